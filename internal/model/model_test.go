package model

import "testing"

func TestDebtPatchApply(t *testing.T) {
	name := "Visa"
	rate := 22.5
	d := Debt{ID: "d1", Name: "Card", Balance: 500, OriginalBalance: 1000, Rate: 19.9, MinPayment: 25}

	got := DebtPatch{Name: &name, Rate: &rate}.Apply(d)
	if got.Name != "Visa" || got.Rate != 22.5 {
		t.Fatalf("Apply = %+v, want name Visa rate 22.5", got)
	}
	if got.ID != "d1" || got.OriginalBalance != 1000 || got.Balance != 500 {
		t.Fatalf("Apply touched untouched fields: %+v", got)
	}
	if (DebtPatch{}).IsEmpty() != true {
		t.Fatal("zero patch should be empty")
	}
}

func TestDebtClamp(t *testing.T) {
	cases := []struct {
		balance float64
		want    float64
	}{
		{-5, 0},
		{0, 0},
		{400, 400},
		{1500, 1000},
	}
	for _, tc := range cases {
		d := Debt{Balance: tc.balance, OriginalBalance: 1000}.Clamp()
		if d.Balance != tc.want {
			t.Fatalf("Clamp(%v) = %v, want %v", tc.balance, d.Balance, tc.want)
		}
	}
}

func TestUserAccountName(t *testing.T) {
	if got := (UserAccount{}).Name(); got != DefaultDisplayName {
		t.Fatalf("blank Name() = %q, want %q", got, DefaultDisplayName)
	}
	if got := (UserAccount{DisplayName: "  "}).Name(); got != DefaultDisplayName {
		t.Fatalf("whitespace Name() = %q, want %q", got, DefaultDisplayName)
	}
	if got := (UserAccount{DisplayName: "Ana"}).Name(); got != "Ana" {
		t.Fatalf("Name() = %q, want Ana", got)
	}
}

func TestPaymentsFor(t *testing.T) {
	ps := []Payment{
		{ID: "p1", DebtID: "a", Amount: 10},
		{ID: "p2", DebtID: "b", Amount: 20},
		{ID: "p3", DebtID: "a", Amount: 5},
	}
	got := PaymentsFor(ps, "a")
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Fatalf("PaymentsFor = %+v, want p1, p3", got)
	}
	if total := TotalPaid(got); total != 15 {
		t.Fatalf("TotalPaid = %v, want 15", total)
	}
}
