package earth

import "math"

// Env describes the ambient conditions at the observer.
type Env struct {
	Pressure    float64 // hPa; zero disables refraction
	Temperature float64 // °C
	Humidity    float64 // relative, 0-1
	Wavelength  float64 // µm; above 100 selects the radio formula
}

// StandardEnv returns sea-level conditions for visual observations.
func StandardEnv() Env {
	return Env{Pressure: 1013.25, Temperature: 15, Humidity: 0.5, Wavelength: 0.55}
}

// Refraction returns the constants A and B of the model
// Δζ = A·tan ζ + B·tan³ ζ, radians, where ζ is the observed zenith distance.
// Inputs outside physical ranges are clamped; NaN takes the lower bound.
func Refraction(env Env) (a, b float64) {
	t := clamp(env.Temperature, -150, 200)
	p := clamp(env.Pressure, 0, 10000)
	r := clamp(env.Humidity, 0, 1)
	w := clamp(env.Wavelength, 0.1, 1e6)
	optical := w <= 100

	var pw float64
	if p > 0 {
		ps := saturationPressure(t) * (1 + p*(4.5e-6+6e-10*t*t))
		pw = r * ps / (1 - (1-r)*ps/p)
	}

	tk := t + 273.15
	var gamma float64
	if optical {
		wlsq := w * w
		gamma = ((77.53484e-6+(4.39108e-7+3.666e-9/wlsq)/wlsq)*p - 11.2684e-6*pw) / tk
	} else {
		gamma = (77.6890e-6*p - (6.3938e-6-0.375463/tk)*pw) / tk
	}

	beta := 4.4474e-6 * tk
	if !optical {
		beta -= 0.0074 * pw * beta
	}

	return gamma * (1 - beta), -gamma * (beta - gamma/2)
}

// saturationPressure returns the saturation vapour pressure of water, hPa,
// over ice below 0 °C and over liquid water otherwise.
func saturationPressure(t float64) float64 {
	if t < 0 {
		return 6.1115 * math.Exp(22.452*t/(272.55+t))
	}
	return math.Pow(10, (0.7859+0.03477*t)/(1+0.00412*t))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
