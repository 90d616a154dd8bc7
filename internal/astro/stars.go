package astro

// Star is a catalogued star: ICRS position at J2000, brightness and, where
// known, its space motion.
type Star struct {
	Name     string  // Common name (e.g., "Sirius", "Vega")
	RAdeg    float64 // Right Ascension in degrees (ICRS, J2000)
	DecDeg   float64 // Declination in degrees (ICRS, J2000)
	Mag      float64 // Apparent visual magnitude (lower = brighter)
	PMRA     float64 // Proper motion in RA times cos(Dec), mas/yr
	PMDec    float64 // Proper motion in Dec, mas/yr
	Parallax float64 // mas
	RV       float64 // Radial velocity, km/s (positive receding)
}

// StarCatalog holds a collection of stars.
type StarCatalog struct {
	Stars []Star
}

// DefaultStarCatalog returns a catalog of bright stars (mag < 3.0), ordered
// roughly by magnitude. Positions and motions are Hipparcos values, rounded.
func DefaultStarCatalog() StarCatalog {
	stars := make([]Star, len(defaultStars))
	copy(stars, defaultStars)
	return StarCatalog{Stars: stars}
}

// Find returns the star with the given name.
func (c StarCatalog) Find(name string) (Star, bool) {
	for _, s := range c.Stars {
		if s.Name == name {
			return s, true
		}
	}
	return Star{}, false
}

var defaultStars = []Star{
	// Magnitude < 0.5
	{"Sirius", 101.287155, -16.716116, -1.46, -546.01, -1223.07, 379.21, -5.5},
	{"Canopus", 95.987958, -52.695661, -0.74, 19.93, 23.24, 10.55, 20.3},
	{"Arcturus", 213.915300, 19.182410, -0.05, -1093.39, -2000.06, 88.83, -5.2},
	{"Vega", 279.234735, 38.783689, 0.03, 200.94, 286.23, 130.23, -13.9},
	{"Capella", 79.172328, 45.997991, 0.08, 75.25, -426.89, 76.20, 30.2},
	{"Rigel", 78.634467, -8.201638, 0.13, 1.31, 0.50, 3.78, 17.8},
	{"Procyon", 114.825498, 5.224988, 0.34, -714.59, -1036.80, 284.56, -3.2},
	{"Achernar", 24.428523, -57.236753, 0.46, 87.00, -38.24, 23.39, 16.0},

	// Magnitude 0.5-1.0
	{"Betelgeuse", 88.792939, 7.407064, 0.50, 27.54, 11.30, 6.55, 21.9},
	{"Hadar", 210.955856, -60.373035, 0.61, -33.27, -23.16, 8.32, 5.9},
	{"Altair", 297.695827, 8.868321, 0.76, 536.23, 385.29, 194.95, -26.1},
	{"Acrux", 186.649563, -63.099093, 0.76, -35.83, -14.86, 10.13, -11.2},
	{"Aldebaran", 68.980163, 16.509302, 0.85, 63.45, -188.94, 48.94, 54.3},
	{"Antares", 247.351915, -26.432003, 0.96, -12.11, -23.30, 5.89, -3.4},
	{"Spica", 201.298247, -11.161319, 0.97, -42.35, -30.67, 13.06, 1.0},

	// Magnitude 1.0-1.5
	{"Pollux", 116.328958, 28.026199, 1.14, -626.55, -45.80, 96.54, 3.2},
	{"Fomalhaut", 344.412693, -29.622237, 1.16, 328.95, -164.67, 129.81, 6.5},
	{"Deneb", 310.357980, 45.280339, 1.25, 2.01, 1.85, 2.31, -4.5},
	{"Mimosa", 191.930263, -59.688764, 1.25, -42.97, -16.18, 11.71, 15.6},
	{"Regulus", 152.092962, 11.967209, 1.35, -248.73, 5.59, 41.13, 5.9},
	{"Adhara", 104.656453, -28.972086, 1.50, 3.24, 1.33, 7.57, 27.3},

	// Magnitude 1.5-2.0
	{"Castor", 113.649428, 31.888276, 1.58, -191.45, -145.19, 64.12, 5.4},
	{"Gacrux", 187.791498, -57.113213, 1.63, 28.23, -265.08, 36.83, 21.0},
	{"Shaula", 263.402167, -37.103824, 1.63, -8.53, -30.80, 5.71, -3.0},
	{"Bellatrix", 81.282764, 6.349703, 1.64, -8.11, -12.88, 12.92, 18.2},
	{"Elnath", 81.572971, 28.607452, 1.65, 22.76, -173.58, 24.36, 9.2},
	{"Miaplacidus", 138.299906, -69.717208, 1.68, -156.47, 108.95, 28.82, -5.0},
	{"Alnilam", 84.053389, -1.201919, 1.69, 1.44, -0.78, 1.65, 25.9},
	{"Alnair", 332.058270, -46.960975, 1.74, 126.69, -147.47, 32.29, 10.9},
	{"Alnitak", 85.189694, -1.942574, 1.77, 3.19, 2.03, 4.43, 18.5},
	{"Alioth", 193.507290, 55.959823, 1.77, 111.74, -8.99, 39.51, -9.3},
	{"Dubhe", 165.931965, 61.751033, 1.79, -136.46, -35.25, 26.38, -9.4},
	{"Mirfak", 51.080709, 49.861179, 1.79, 24.11, -26.01, 5.51, -2.0},
	{"Wezen", 107.097850, -26.393200, 1.84, -2.75, 3.33, 1.82, 34.3},
	{"Kaus Australis", 276.042993, -34.384616, 1.85, -39.61, -124.05, 22.76, -15.0},
	{"Avior", 125.628480, -59.509484, 1.86, -25.52, 22.72, 5.16, 11.6},
	{"Alkaid", 206.885157, 49.313267, 1.86, -121.23, -15.56, 32.39, -10.9},
	{"Menkalinan", 89.882179, 44.947433, 1.90, -56.44, -0.95, 39.72, -18.2},
	{"Atria", 252.166229, -69.027712, 1.92, 17.99, -31.58, 8.35, -3.0},
	{"Alhena", 99.427960, 16.399280, 1.93, -2.04, -66.92, 31.12, -12.5},
	{"Peacock", 306.411904, -56.735090, 1.94, 7.71, -86.15, 18.24, 2.0},
	{"Mirzam", 95.675000, -17.955919, 1.98, -3.45, -0.47, 6.53, 33.7},
	{"Polaris", 37.954561, 89.264109, 2.02, 44.48, -11.85, 7.54, -17.4},
	{"Alphard", 141.896847, -8.658603, 2.00, -14.49, 33.25, 18.40, -4.3},

	// Magnitude 2.0-2.5
	{"Hamal", 31.793357, 23.462418, 2.00, 190.73, -145.77, 49.48, -14.2},
	{"Algieba", 154.993144, 19.841489, 2.08, 310.77, -152.88, 25.96, -36.2},
	{"Diphda", 10.897379, -17.986606, 2.02, 232.79, 32.71, 33.86, 13.1},
	{"Nunki", 283.816360, -26.296724, 2.02, 13.87, -52.65, 14.32, -11.2},
	{"Mizar", 200.981429, 54.925362, 2.04, 121.23, -22.01, 38.01, -5.6},
	{"Alpheratz", 2.096916, 29.090431, 2.06, 135.68, -162.95, 33.62, -10.6},
	{"Mirach", 17.433016, 35.620558, 2.05, 175.59, -112.23, 16.36, 3.0},
	{"Kochab", 222.676357, 74.155505, 2.08, -32.29, 11.91, 24.91, 16.9},
	{"Rasalhague", 263.733627, 12.560035, 2.08, 108.07, -221.57, 67.13, 12.7},
	{"Algol", 47.042215, 40.955648, 2.12, 2.99, -1.66, 34.70, 4.0},
	{"Denebola", 177.264910, 14.572058, 2.13, -497.68, -114.67, 90.16, -0.2},
	{"Alphecca", 233.671950, 26.714693, 2.23, 120.27, -89.58, 43.46, 1.7},
	{"Mintaka", 83.001667, -0.299095, 2.23, 0.64, -0.69, 4.71, 16.0},
	{"Eltanin", 269.151541, 51.488896, 2.23, -8.48, -22.79, 22.10, -27.9},
	{"Schedar", 10.126838, 56.537331, 2.23, 50.36, -32.17, 14.29, -4.3},
	{"Caph", 2.294522, 59.149781, 2.27, 523.39, -180.42, 59.89, 11.3},
	{"Merak", 165.460319, 56.382427, 2.37, 81.66, 33.74, 40.90, -12.0},

	// Magnitude 2.5-3.0
	{"Enif", 326.046484, 9.875009, 2.39, 30.02, 1.38, 4.73, 3.4},
	{"Phecda", 178.457679, 53.694758, 2.44, 107.76, 11.16, 38.99, -12.6},
	{"Scheat", 345.943572, 28.082785, 2.42, 187.76, 137.61, 16.37, 7.9},
	{"Alderamin", 319.644885, 62.585574, 2.51, 149.91, 48.27, 66.50, -10.0},
	{"Markab", 346.190223, 15.205267, 2.49, 61.10, -42.56, 23.36, -2.7},
	{"Zosma", 168.527089, 20.523718, 2.56, 143.31, -130.43, 56.52, -20.2},
	{"Gienah", 183.951543, -17.541929, 2.59, -159.58, 22.31, 21.23, -4.2},
	{"Unukalhai", 236.066976, 6.425627, 2.65, 134.66, 44.14, 44.10, 2.6},
	{"Sheratan", 28.660046, 20.808031, 2.64, 96.32, -108.80, 55.60, -1.9},
}
