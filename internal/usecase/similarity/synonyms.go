package similarity

// Curated manufacturing synonym table. Values are empirically chosen
// calibration points validated by the engine's regression scenarios,
// not derived from a principled metric. Keys are normalized terms
// joined in lexicographic order.
var synonymTable = map[string]float64{
	pairKey("cnc machining", "precision machining"):    0.70,
	pairKey("3d printing", "additive manufacturing"):   0.85,
	pairKey("cnc machining", "cnc milling"):            0.80,
	pairKey("cnc machining", "cnc turning"):            0.75,
	pairKey("cnc milling", "cnc turning"):              0.70,
	pairKey("sheet metal", "sheet metal fabrication"):  0.90,
	pairKey("injection molding", "plastic molding"):    0.80,
	pairKey("injection molding", "injection moulding"): 0.95,
	pairKey("casting", "die casting"):                  0.70,
	pairKey("casting", "investment casting"):           0.70,
	pairKey("die casting", "investment casting"):       0.60,
	pairKey("anodizing", "anodization"):                0.95,
	pairKey("laser cutting", "waterjet cutting"):       0.55,
	pairKey("fabrication", "welding"):                  0.45,
	pairKey("aluminium", "aluminum"):                   0.95,
	pairKey("stainless steel", "steel"):                0.65,
	pairKey("titanium", "titanium alloy"):              0.90,
	pairKey("iso 9001", "iso9001"):                     0.95,
	pairKey("as9100", "iso 9001"):                      0.60,
	pairKey("grinding", "surface grinding"):            0.85,
	pairKey("edm", "electrical discharge machining"):   0.95,
	pairKey("forging", "stamping"):                     0.40,
	pairKey("powder coating", "surface treatment"):     0.55,
	pairKey("aluminum 6061", "aluminum"):               0.85,
	pairKey("aluminum 6061", "aluminum 7075"):          0.75,
}

// synonymScore looks up the calibrated score for a normalized term pair.
func synonymScore(a, b string) (float64, bool) {
	v, ok := synonymTable[pairKey(a, b)]
	return v, ok
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
