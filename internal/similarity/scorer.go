package similarity

// Score returns the Jaccard index of the token sets of two texts, in
// [0, 1]. If either side tokenizes to nothing the score is 0, so
// content-free text can never produce a false positive. Symmetric and
// fully deterministic; this is the fallback when the semantic reasoner is
// unavailable and the basis of the retrospective pairer.
func Score(textA, textB string) float64 {
	setA := Tokenize(textA)
	setB := Tokenize(textB)

	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
