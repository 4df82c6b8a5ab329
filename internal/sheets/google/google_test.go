package google

import (
	"context"
	"testing"
)

func TestNew_RequiresSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), "", "Transactions"); err == nil {
		t.Fatal("expected error for empty spreadsheet ID")
	}
	if _, err := New(context.Background(), "   ", ""); err == nil {
		t.Fatal("expected error for blank spreadsheet ID")
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	if _, err := New(context.Background(), "sheet-id", ""); err == nil {
		t.Fatal("expected error when no credentials are configured")
	}
}

func TestResolveSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Transactions"},
		{"   ", "Transactions"},
		{"Backup", "Backup"},
		{" รายการ ", "รายการ"},
	}
	for _, tt := range tests {
		if got := resolveSheetName(tt.in); got != tt.want {
			t.Errorf("resolveSheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
