package timescale

import (
	"errors"
	"math"
	"testing"
)

func TestTAIMinusUTC(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		want    float64
	}{
		{"2003", 2003, 6, 1, 32},
		{"2008", 2008, 1, 17, 33},
		{"2017", 2017, 9, 1, 37},
		{"eve of 2017 leap", 2016, 12, 31, 36},
		{"1972 start", 1972, 1, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dubious, err := TAIMinusUTC(tt.y, tt.m, tt.d, 0)
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if dubious {
				t.Error("unexpected dubious flag")
			}
			if got != tt.want {
				t.Errorf("TAIMinusUTC = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTAIMinusUTC_DriftEra(t *testing.T) {
	// 1966-01-01 is MJD 39126, the reference epoch of its drift segment.
	got, _, err := TAIMinusUTC(1966, 1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-4.3131700) > 1e-12 {
		t.Errorf("1966-01-01 = %v, want 4.31317", got)
	}

	noon, _, _ := TAIMinusUTC(1966, 1, 1, 0.5)
	if math.Abs(noon-got-0.5*0.0025920) > 1e-12 {
		t.Errorf("half-day drift = %v", noon-got)
	}
}

func TestTAIMinusUTC_Dubious(t *testing.T) {
	if _, dubious, _ := TAIMinusUTC(1950, 1, 1, 0); !dubious {
		t.Error("pre-1960 date not flagged")
	}
	if _, dubious, _ := TAIMinusUTC(lastTableYear+6, 1, 1, 0); !dubious {
		t.Error("date beyond table horizon not flagged")
	}
}

func TestTAIMinusUTC_Errors(t *testing.T) {
	if _, _, err := TAIMinusUTC(2000, 1, 1, 1.5); !errors.Is(err, ErrBadFraction) {
		t.Errorf("err = %v, want ErrBadFraction", err)
	}
	if _, _, err := TAIMinusUTC(2000, 13, 1, 0); !errors.Is(err, ErrBadMonth) {
		t.Errorf("err = %v, want ErrBadMonth", err)
	}
}
