package records

import (
	"testing"
)

func strPtr(v string) *string { return &v }

func TestAllergyCommands(t *testing.T) {
	ctx := setupTestContext(t)
	profileID, err := ctx.ProfileID()
	if err != nil {
		t.Fatal(err)
	}

	if err := (&AllergyListCmd{}).Run(ctx); err != nil {
		t.Errorf("allergy list on empty store failed: %v", err)
	}
	if err := (&AllergyAddCmd{Allergen: "Peanuts", Reaction: "Hives", Severity: "Moderate"}).Run(ctx); err != nil {
		t.Fatalf("allergy add failed: %v", err)
	}
	if err := (&AllergyAddCmd{Allergen: ""}).Run(ctx); err == nil {
		t.Error("empty allergen should fail")
	}

	edit := &AllergyEditCmd{Allergy: "peanuts", Reaction: strPtr("Anaphylaxis"), Severity: strPtr("Severe")}
	if err := edit.Run(ctx); err != nil {
		t.Fatalf("allergy edit failed: %v", err)
	}
	all, err := ctx.Store.GetAllergies(profileID)
	if err != nil || len(all) != 1 || all[0].Severity != "Severe" || all[0].Reaction != "Anaphylaxis" {
		t.Fatalf("allergies = %+v, %v", all, err)
	}
	if err := (&AllergyListCmd{}).Run(ctx); err != nil {
		t.Errorf("allergy list failed: %v", err)
	}

	if err := (&AllergyDeleteCmd{Allergy: "Shellfish"}).Run(ctx); err == nil {
		t.Error("deleting an unknown allergy should fail")
	}
	if err := (&AllergyDeleteCmd{Allergy: "Peanuts"}).Run(ctx); err != nil {
		t.Fatalf("allergy delete failed: %v", err)
	}
	if all, _ := ctx.Store.GetAllergies(profileID); len(all) != 0 {
		t.Errorf("allergies after delete = %+v", all)
	}
}

func TestVaccineCommands(t *testing.T) {
	ctx := setupTestContext(t)
	profileID, err := ctx.ProfileID()
	if err != nil {
		t.Fatal(err)
	}

	if err := (&VaccineAddCmd{Type: "Influenza"}).Run(ctx); err != nil {
		t.Fatalf("vaccine add failed: %v", err)
	}
	if err := (&VaccineAddCmd{Type: "Tdap", Date: "2010-01-05"}).Run(ctx); err != nil {
		t.Fatalf("vaccine add with date failed: %v", err)
	}
	if err := (&VaccineAddCmd{Type: "Tdap", Date: "Jan 5"}).Run(ctx); err == nil {
		t.Error("malformed date should fail")
	}

	vacs, err := ctx.Store.GetVaccinations(profileID)
	if err != nil || len(vacs) != 2 || vacs[1].DateAdministered != "2010-01-05" {
		t.Errorf("vaccinations = %+v, %v", vacs, err)
	}
	if err := (&VaccineListCmd{}).Run(ctx); err != nil {
		t.Errorf("vaccine list failed: %v", err)
	}
	for _, format := range []string{"table", "json", "yaml"} {
		if err := (&VaccineReportCmd{Format: format}).Run(ctx); err != nil {
			t.Errorf("vaccine report --format %s failed: %v", format, err)
		}
	}
}

func TestPrescriberCommands(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&PrescriberListCmd{}).Run(ctx); err != nil {
		t.Errorf("prescriber list on empty store failed: %v", err)
	}
	if err := (&PrescriberAddCmd{Name: "Dr. Lee", Phone: "555-0100"}).Run(ctx); err != nil {
		t.Fatalf("prescriber add failed: %v", err)
	}
	if err := (&PrescriberAddCmd{Name: "DR. LEE"}).Run(ctx); err == nil {
		t.Error("duplicate prescriber should fail")
	}
	if err := (&PrescriberListCmd{}).Run(ctx); err != nil {
		t.Errorf("prescriber list failed: %v", err)
	}
}
