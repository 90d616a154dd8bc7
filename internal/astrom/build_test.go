package astrom

import (
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/sidereal"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/earth"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/timescale"
)

func TestNewTerrestrial(t *testing.T) {
	c := referenceContext()

	if math.Abs(c.PMInterval()-13.252484686225873) > 1e-12 {
		t.Errorf("pmt = %.16g", c.PMInterval())
	}
	checkVec(t, "eb", c.ObserverPosition(),
		astro.Vec3{X: -0.9741827110630322720, Y: -0.2115130190135344832, Z: -0.09179840186949532298}, 1e-12)

	eh, em := c.SunToObserver()
	checkVec(t, "eh", eh, astro.Vec3{X: -0.9736425571689739035, Y: -0.2092452125849330936, Z: -0.09075578152243272599}, 1e-12)
	if math.Abs(em-0.9998233241709957653) > 1e-12 {
		t.Errorf("em = %.16g", em)
	}

	v, bm1 := c.Velocity()
	checkVec(t, "v", v, astro.Vec3{X: 0.2078704992916728762e-4, Y: -0.8955360107151952319e-4, Z: -0.3863338994288951082e-4}, 1e-16)
	if math.Abs(bm1-0.9999999950277561236) > 1e-15 {
		t.Errorf("bm1 = %.16g", bm1)
	}

	bpn := c.BPN()
	if math.Abs(bpn[0][2]+0.0013122272008952603) > 1e-15 || math.Abs(bpn[2][0]-0.0013122272) > 1e-15 ||
		math.Abs(bpn[1][0]-4.978650072762214e-08) > 1e-15 {
		t.Errorf("bpn = %v", bpn)
	}

	checkAngle(t, "along", c.AdjustedLongitude(), -0.5278008060295995734, 1e-12)
	xpl, ypl := c.LocalPolarMotion()
	checkAngle(t, "xpl", xpl, 0.1133427418130752958e-5, 1e-17)
	checkAngle(t, "ypl", ypl, 0.1453347595780646207e-5, 1e-17)
	checkAngle(t, "eral", c.LocalERA(), 2.617608903970400427, 1e-12)
	if c.DiurnalAberration() != 0 {
		t.Errorf("diurab = %v, want 0", c.DiurnalAberration())
	}
	if a, b := c.Refraction(); a != 0.000201418779 || b != -2.36140831e-7 {
		t.Errorf("refraction = %v, %v", a, b)
	}
	if c.Warnings() != 0 {
		t.Errorf("warnings = %v", c.Warnings())
	}
}

func TestNewObservedOnly(t *testing.T) {
	c := NewObservedOnly(ObservedParams{
		SP:    -3.01974337e-11,
		ERA:   3.14540971,
		Site:  Site{Longitude: -0.527800806, Latitude: -1.2345856, Height: 2738},
		Polar: Polar{XP: 2.47230737e-7, YP: 1.82640464e-6},
		RefA:  0.000201418779,
		RefB:  -2.36140831e-7,
	})

	checkAngle(t, "along", c.AdjustedLongitude(), -0.5278008060295995734, 1e-12)
	checkAngle(t, "eral", c.LocalERA(), 2.617608903970400427, 1e-12)
	if math.Abs(c.DiurnalAberration()-0.5135843661699913529e-6) > 1e-17 {
		t.Errorf("diurab = %.16g", c.DiurnalAberration())
	}
	if math.Abs(c.sphi+0.9440115679003211329) > 1e-15 || math.Abs(c.cphi-0.3299123514971474711) > 1e-15 {
		t.Errorf("sphi, cphi = %v, %v", c.sphi, c.cphi)
	}
}

func TestNewGeocentric(t *testing.T) {
	st := ephem.EarthState{
		Heliocentric: astro.Vec3{X: -0.97, Y: -0.21, Z: -0.09},
		Barycentric: astro.PV{
			P: astro.Vec3{X: -0.975, Y: -0.212, Z: -0.092},
			V: astro.Vec3{X: 0.0036, Y: -0.0154, Z: -0.0067},
		},
	}
	c := NewGeocentric(timescale.Date{Hi: timescale.J2000, Lo: 365.25}, st)

	if c.PMInterval() != 1 {
		t.Errorf("pmt = %v, want 1", c.PMInterval())
	}
	if c.ObserverPosition() != st.Barycentric.P {
		t.Errorf("eb = %+v", c.ObserverPosition())
	}
	if c.BPN() != astro.Identity() {
		t.Errorf("bpn = %v, want identity", c.BPN())
	}
	// About 29.7 km/s.
	if v, _ := c.Velocity(); math.Abs(v.Norm()*astro.SpeedOfLight-29.7e3) > 500 {
		t.Errorf("|v| = %v m/s", v.Norm()*astro.SpeedOfLight)
	}

	// A space observer 1e6 km sunward shifts eb by that amount.
	pv := astro.PV{P: st.Heliocentric.Normalized().Scale(-1e9)}
	b := NewBarycentric(timescale.Date{Hi: timescale.J2000}, pv, st)
	if d := b.ObserverPosition().Sub(st.Barycentric.P).Norm() * astro.AU; math.Abs(d-1e9) > 1e-3 {
		t.Errorf("observer offset = %v m", d)
	}
}

func scenarioParams() Params {
	ut1 := timescale.MJD(53736)
	return Params{
		TT:        ut1.AddDays(65.184 / 86400),
		UT1:       ut1,
		Env:       earth.StandardEnv(),
		Ephemeris: ephem.NewAnalytic(),
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := Build(scenarioParams())
	b := Build(scenarioParams())
	if *a != *b {
		t.Errorf("contexts differ:\n%+v\n%+v", *a, *b)
	}
}

func TestBuild_NilEphemeris(t *testing.T) {
	p := scenarioParams()
	want := Build(p)
	p.Ephemeris = nil
	if got := Build(p); *got != *want {
		t.Error("nil ephemeris does not select the analytic one")
	}
}

func TestBuild_Sanitize(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name      string
		site      Site
		ell       earth.Ellipsoid
		wantSite  Site
		wantWarns Warning
	}{
		{"clean", Site{Longitude: 0.1, Latitude: 0.5, Height: 100}, earth.GRS80, Site{Longitude: 0.1, Latitude: 0.5, Height: 100}, 0},
		{"NaN longitude", Site{Longitude: nan, Latitude: 0.5}, earth.WGS84, Site{Latitude: 0.5}, WarnSiteDegraded},
		{"latitude too large", Site{Latitude: 2}, earth.WGS84, Site{Latitude: math.Pi / 2}, WarnSiteDegraded},
		{"latitude too small", Site{Latitude: -2}, earth.WGS84, Site{Latitude: -math.Pi / 2}, WarnSiteDegraded},
		{"infinite latitude", Site{Latitude: inf}, earth.WGS84, Site{}, WarnSiteDegraded},
		{"height too high", Site{Height: 2e5}, earth.WGS84, Site{Height: MaxHeight}, WarnSiteDegraded},
		{"height too low", Site{Height: -2e4}, earth.WGS84, Site{Height: MinHeight}, WarnSiteDegraded},
		{"NaN height", Site{Height: nan}, earth.WGS84, Site{}, WarnSiteDegraded},
		{"unknown ellipsoid", Site{}, earth.Ellipsoid(42), Site{}, WarnEllipsoid},
		{"both", Site{Height: inf}, earth.Ellipsoid(-1), Site{}, WarnSiteDegraded | WarnEllipsoid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scenarioParams()
			p.Site, p.Ellipsoid = tt.site, tt.ell
			c := Build(p)

			if c.Site() != tt.wantSite {
				t.Errorf("site = %+v, want %+v", c.Site(), tt.wantSite)
			}
			if c.Warnings() != tt.wantWarns {
				t.Errorf("warnings = %v, want %v", c.Warnings(), tt.wantWarns)
			}
			// Always usable.
			ri, di := c.CatalogToIntermediate(Catalog{RA: 1, Dec: 0.2})
			obs := c.IntermediateToObserved(ri, di)
			if math.IsNaN(obs.Azimuth) || math.IsNaN(obs.Zenith) {
				t.Errorf("observed = %+v", obs)
			}
		})
	}
}

func TestBuild_EphemerisRange(t *testing.T) {
	p := scenarioParams()
	p.TT = timescale.MJD(95000) // 2118
	p.UT1 = p.TT
	if c := Build(p); !c.Warnings().Has(WarnEphemerisRange) {
		t.Errorf("warnings = %v", c.Warnings())
	}
}

// ERA - EO is the Greenwich apparent sidereal time, which Meeus computes
// from the older equinox-based models.
func TestBuild_SiderealTime(t *testing.T) {
	for _, mjd := range []float64{51544.5, 53736.3, 60000.75} {
		p := scenarioParams()
		p.UT1 = timescale.MJD(mjd)
		p.TT = p.UT1.AddDays(69.0 / 86400)
		c := Build(p)

		gast := astro.NormalizeAngle(c.ERA() - c.EquationOfOrigins())
		want := sidereal.Apparent(p.UT1.JD()).Rad()
		checkAngle(t, "GAST", gast, want, 2e-6)
	}
}

func TestWithEarthRotation(t *testing.T) {
	c := Build(scenarioParams())
	orig := *c

	n := c.WithEarthRotation(1.25)
	if n.ERA() != 1.25 || n.LocalERA() != 1.25+c.AdjustedLongitude() {
		t.Errorf("era = %v, eral = %v", n.ERA(), n.LocalERA())
	}
	if *c != orig {
		t.Error("WithEarthRotation modified the receiver")
	}

	ut1 := timescale.MJD(53736.25)
	if got, want := c.WithUT1(ut1).LocalERA(), earth.ERA(ut1)+c.AdjustedLongitude(); got != want {
		t.Errorf("WithUT1 eral = %v, want %v", got, want)
	}
}

func TestWarningString(t *testing.T) {
	tests := []struct {
		w    Warning
		want string
	}{
		{0, "ok"},
		{WarnDubiousDate, "dubious-date"},
		{WarnSiteDegraded | WarnEllipsoid, "site-degraded|ellipsoid"},
		{WarnEphemerisRange | 0x80, "ephemeris-range|0x80"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("Warning(%d).String() = %q, want %q", tt.w, got, tt.want)
		}
	}
}
