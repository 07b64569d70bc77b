package dedupe

import (
	"reflect"
	"testing"

	"github.com/amishk599/jobinsights/internal/model"
)

func rec(title, company, employment string) model.Record {
	return model.Record{
		Title:          model.StringPtr(title),
		Company:        model.StringPtr(company),
		EmploymentType: model.StringPtr(employment),
	}
}

func titles(records []model.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = model.Deref(r.Title) + "@" + model.Deref(r.Company) + "/" + model.Deref(r.EmploymentType)
	}
	return out
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	in := []model.Record{
		rec("Data Analyst", "Acme", "Full-time"),
		rec("Engineer", "Acme", "Full-time"),
		rec("Data Analyst", "Acme", "Contract"),
		rec("Data Analyst", "Globex", "Contract"),
		rec("Engineer", "Acme", "Part-time"),
	}
	got := titles(Dedupe(in))
	want := []string{
		"Data Analyst@Acme/Full-time",
		"Engineer@Acme/Full-time",
		"Data Analyst@Globex/Contract",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedupe() = %v, want %v", got, want)
	}
}

func TestDedupe_CaseSensitiveKey(t *testing.T) {
	in := []model.Record{
		rec("Data Analyst", "Acme", "a"),
		rec("data analyst", "Acme", "b"),
		rec("Data Analyst", "ACME", "c"),
	}
	if got := Dedupe(in); len(got) != 3 {
		t.Errorf("len(Dedupe()) = %d, want 3", len(got))
	}
}

func TestDedupe_NilFields(t *testing.T) {
	in := []model.Record{
		{Company: model.StringPtr("Acme")},
		{Company: model.StringPtr("Acme")},
		{Title: model.StringPtr(""), Company: model.StringPtr("Acme")},
		{},
		{},
	}
	got := Dedupe(in)
	if len(got) != 3 {
		t.Fatalf("len(Dedupe()) = %d, want 3", len(got))
	}
	if got[0].Title != nil || got[1].Title == nil || got[2].Company != nil {
		t.Errorf("unexpected survivors: %+v", got)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	in := []model.Record{
		rec("A", "X", "1"),
		rec("B", "X", "1"),
		rec("A", "X", "2"),
		rec("C", "Y", "1"),
		rec("B", "X", "3"),
	}
	once := Dedupe(in)
	twice := Dedupe(once)
	if !reflect.DeepEqual(titles(once), titles(twice)) {
		t.Errorf("Dedupe not idempotent: %v vs %v", titles(once), titles(twice))
	}
}

func TestDedupe_Empty(t *testing.T) {
	got := Dedupe(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Dedupe(nil) = %v, want empty slice", got)
	}
}
