package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
)

func testDebts() []model.Debt {
	return []model.Debt{
		{ID: "0192a000-0000-7000-8000-00000000aaaa", Name: "Visa"},
		{ID: "0192a000-0000-7000-8000-00000000bbbb", Name: "Car loan"},
		{ID: "0192b111-0000-7000-8000-00000000cccc", Name: "Student loan"},
	}
}

func TestResolveDebt(t *testing.T) {
	debts := testDebts()
	tests := []struct {
		ref  string
		want string
	}{
		{"0192a000-0000-7000-8000-00000000bbbb", "Car loan"},
		{"0192b", "Student loan"},
		{"0000aaaa", "Visa"},
		{"visa", "Visa"},
		{"  CAR LOAN ", "Car loan"},
	}
	for _, tt := range tests {
		got, err := resolveDebt(debts, tt.ref)
		if err != nil {
			t.Fatalf("resolveDebt(%q) error: %v", tt.ref, err)
		}
		if got.Name != tt.want {
			t.Fatalf("resolveDebt(%q) = %q, want %q", tt.ref, got.Name, tt.want)
		}
	}
}

func TestResolveDebtAmbiguous(t *testing.T) {
	_, err := resolveDebt(testDebts(), "0192a")
	if err == nil {
		t.Fatal("expected ambiguity error")
	}
	if !strings.Contains(err.Error(), "ambiguous") || !strings.Contains(err.Error(), "Visa") {
		t.Fatalf("error = %q, want ambiguity listing Visa", err)
	}
}

func TestResolveDebtNoMatch(t *testing.T) {
	if _, err := resolveDebt(testDebts(), "mortgage"); !errors.Is(err, errNoDebtMatch) {
		t.Fatalf("resolveDebt(mortgage) err = %v, want errNoDebtMatch", err)
	}
	if _, err := resolveDebt(testDebts(), "   "); err == nil {
		t.Fatal("expected empty-reference error")
	}
}

func TestPaymentTarget(t *testing.T) {
	debts := testDebts()
	tests := []struct {
		name    string
		ref     string
		force   bool
		want    string
		wantErr bool
	}{
		{"match", "visa", false, "0192a000-0000-7000-8000-00000000aaaa", false},
		{"match ignores force", "visa", true, "0192a000-0000-7000-8000-00000000aaaa", false},
		{"unknown without force", "mortgage", false, "", true},
		{"unknown with force is orphan", " mortgage ", true, "mortgage", false},
		{"ambiguous without force", "0192a", false, "", true},
		{"ambiguous with force stays an error", "0192a", true, "", true},
		{"empty with force", "  ", true, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paymentTarget(debts, tt.ref, tt.force)
			if (err != nil) != tt.wantErr {
				t.Fatalf("paymentTarget(%q, %v) err = %v, wantErr %v", tt.ref, tt.force, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("paymentTarget(%q, %v) = %q, want %q", tt.ref, tt.force, got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0192a000-0000-7000-8000-00000000aaaa"); got != "0000aaaa" {
		t.Fatalf("shortID = %q, want %q", got, "0000aaaa")
	}
	if got := shortID("abc"); got != "abc" {
		t.Fatalf("shortID(short) = %q, want %q", got, "abc")
	}
}

func TestDescribeErr(t *testing.T) {
	err := fmt.Errorf("save debt: %w", ledger.ErrStoreUnavailable)
	if got := describeErr(err); !strings.HasPrefix(got, "storage unavailable") {
		t.Fatalf("describeErr = %q", got)
	}
	if got := describeErr(errors.New("boom")); got != "boom" {
		t.Fatalf("describeErr = %q, want boom", got)
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9", "--detach=true"})
	want := []string{"serve", "--addr", ":9"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("filterDetachArg = %v, want %v", got, want)
	}
}

func TestPIDRoundTrip(t *testing.T) {
	path := t.TempDir() + "/serve.pid"
	if err := writePID(path, 4242); err != nil {
		t.Fatalf("writePID: %v", err)
	}
	pid, err := readPID(path)
	if err != nil {
		t.Fatalf("readPID: %v", err)
	}
	if pid != 4242 {
		t.Fatalf("pid = %d, want 4242", pid)
	}
	if err := ensureServerNotRunning(t.TempDir() + "/missing.pid"); err != nil {
		t.Fatalf("ensureServerNotRunning(missing) = %v", err)
	}
}
