package models

import "testing"

func str(s string) *string { return &s }

func TestProfileUpdateSetOnlyPresentFields(t *testing.T) {
	upd := ProfileUpdate{Phone: str("555"), BloodType: str("O+"), Allergies: str("")}

	set := upd.Set()
	if len(set) != 3 {
		t.Fatalf("expected 3 fields, got %v", set)
	}
	if set["phone"] != "555" || set["bloodType"] != "O+" {
		t.Errorf("unexpected set %v", set)
	}
	if v, ok := set["allergies"]; !ok || v != "" {
		t.Errorf("explicit empty allergies should be kept, got %v", set)
	}
	if _, ok := set["fullName"]; ok {
		t.Error("absent fullName must not be written")
	}
}

func TestProfileUpdateIsEmpty(t *testing.T) {
	if !(ProfileUpdate{}).IsEmpty() {
		t.Error("zero update should be empty")
	}
	if (ProfileUpdate{ProfileImg: str("x")}).IsEmpty() {
		t.Error("image-only update should not be empty")
	}
}

func TestFieldCoversProfileFields(t *testing.T) {
	var upd ProfileUpdate
	for _, name := range ProfileFields {
		if upd.Field(name) == nil {
			t.Errorf("no slot for %q", name)
		}
	}
}

func TestSavedPageURL(t *testing.T) {
	if got := (SavedPage{Content: map[string]any{"url": "x"}}).URL(); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
	if got := (SavedPage{Content: map[string]any{"url": 3}}).URL(); got != "" {
		t.Errorf("non-string url should be empty, got %q", got)
	}
	if got := (SavedPage{}).URL(); got != "" {
		t.Errorf("nil content should be empty, got %q", got)
	}
}
