// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"testing"
	"time"
)

func TestNullInt64RoundTrip(t *testing.T) {
	if got := NullInt64FromPtr(nil); got.Valid {
		t.Errorf("NullInt64FromPtr(nil) = %+v, want invalid", got)
	}

	v := int64(42)
	n := NullInt64FromPtr(&v)
	if !n.Valid || n.Int64 != 42 {
		t.Errorf("NullInt64FromPtr(&42) = %+v", n)
	}
	if p := Int64PtrFromNull(n); p == nil || *p != 42 {
		t.Errorf("Int64PtrFromNull() = %v, want 42", p)
	}
	if p := Int64PtrFromNull(sql.NullInt64{}); p != nil {
		t.Errorf("Int64PtrFromNull(invalid) = %v, want nil", *p)
	}
}

func TestNullFloat64RoundTrip(t *testing.T) {
	f := 1500.5
	n := NullFloat64FromPtr(&f)
	if p := Float64PtrFromNull(n); p == nil || *p != f {
		t.Errorf("Float64PtrFromNull() = %v, want %v", p, f)
	}
	if NullFloat64FromPtr(nil).Valid {
		t.Error("NullFloat64FromPtr(nil) should be invalid")
	}
}

func TestNullTimeRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := NullTimeFromPtr(&now)
	if p := TimePtrFromNull(n); p == nil || !p.Equal(now) {
		t.Errorf("TimePtrFromNull() = %v, want %v", p, now)
	}
	if TimePtrFromNull(sql.NullTime{}) != nil {
		t.Error("TimePtrFromNull(invalid) should be nil")
	}
}
