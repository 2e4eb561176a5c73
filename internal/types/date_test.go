package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2022-03-09")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if d.Year != 2022 || d.Month != time.March || d.Day != 9 {
		t.Fatalf("unexpected date: %+v", d)
	}
	if got := d.String(); got != "2022-03-09" {
		t.Fatalf("String: got=%q want=%q", got, "2022-03-09")
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"garbage",
		"09-03-2022",
		"2022/03/09",
		"2022-13-01",
		"2022-02-30",
		"2022-3-9",
		"2022-03-09T00:00:00Z",
	}
	for _, input := range inputs {
		if _, err := ParseDate(input); err == nil {
			t.Fatalf("ParseDate(%q) should have failed", input)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	d := Date{Year: 2022, Month: time.June, Day: 21}
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(raw) != `"2022-06-21"` {
		t.Fatalf("marshal: got=%s want=%q", raw, `"2022-06-21"`)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if back != d {
		t.Fatalf("round trip: got=%+v want=%+v", back, d)
	}

	if err := json.Unmarshal([]byte(`"not-a-date"`), &back); err == nil {
		t.Fatal("unmarshal should reject a malformed date string")
	}
	if err := json.Unmarshal([]byte(`20220621`), &back); err == nil {
		t.Fatal("unmarshal should reject a non-string date")
	}
}

func TestDateBefore(t *testing.T) {
	t.Parallel()

	a := Date{Year: 2021, Month: time.December, Day: 31}
	b := Date{Year: 2022, Month: time.January, Day: 1}
	if !a.Before(b) {
		t.Fatalf("%v should be before %v", a, b)
	}
	if b.Before(a) {
		t.Fatalf("%v should not be before %v", b, a)
	}
	if a.Before(a) {
		t.Fatal("a date should not be before itself")
	}
}

func TestDateSQLValue(t *testing.T) {
	t.Parallel()

	d := Date{Year: 2021, Month: time.December, Day: 31}
	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	ts, ok := v.(time.Time)
	if !ok {
		t.Fatalf("Value: got %T want time.Time", v)
	}
	want := time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("Value: got=%v want=%v", ts, want)
	}
}

func TestDateScan(t *testing.T) {
	t.Parallel()

	want := Date{Year: 2022, Month: time.May, Day: 4}
	cases := []struct {
		name string
		src  interface{}
	}{
		{"time", time.Date(2022, time.May, 4, 13, 45, 0, 0, time.UTC)},
		{"string", "2022-05-04"},
		{"string with clock", "2022-05-04 00:00:00+00:00"},
		{"bytes", []byte("2022-05-04")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tc.src); err != nil {
				t.Fatalf("Scan(%v) returned error: %v", tc.src, err)
			}
			if d != want {
				t.Fatalf("Scan: got=%+v want=%+v", d, want)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Fatal("Scan should reject unsupported source types")
	}
}
