package db

import "testing"

func TestWithUTC(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{
			"postgres://u:p@localhost:5432/clinic?sslmode=disable",
			"postgres://u:p@localhost:5432/clinic?sslmode=disable&timezone=UTC",
		},
		{
			"host=localhost user=u dbname=clinic",
			"host=localhost user=u dbname=clinic timezone=UTC",
		},
		{
			"postgres://u:p@localhost/clinic?TimeZone=America/Sao_Paulo",
			"postgres://u:p@localhost/clinic?TimeZone=America/Sao_Paulo",
		},
	}

	for _, tt := range tests {
		if got := WithUTC(tt.in); got != tt.want {
			t.Errorf("WithUTC(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
