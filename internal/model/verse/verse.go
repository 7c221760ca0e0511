package verse

import "fmt"

// Verse is one unit of the scripture corpus together with the similarity
// score attached by retrieval. The corpus itself is read-only reference data.
type Verse struct {
	ID              string  `json:"id"`
	Chapter         int     `json:"chapter"`
	Verse           int     `json:"verse"`
	Shloka          string  `json:"shloka"`
	Transliteration string  `json:"transliteration"`
	EnglishMeaning  string  `json:"eng_meaning"`
	SimilarityScore float64 `json:"similarity_score"`
}

// WithScore returns a copy of v with the similarity score set, rejecting
// malformed retrieval output early.
func (v Verse) WithScore(score float64) (Verse, error) {
	if score < 0 || score > 1 {
		return Verse{}, fmt.Errorf("similarity score %f out of range [0,1] for verse %s", score, v.ID)
	}
	v.SimilarityScore = score
	return v, nil
}

// Default is the duty/non-attachment verse (2.47) substituted when
// retrieval fails or returns nothing.
func Default() Verse {
	return Verse{
		ID:              "BG2.47",
		Chapter:         2,
		Verse:           47,
		Shloka:          "कर्मण्येवाधिकारस्ते मा फलेषु कदाचन। मा कर्मफलहेतुर्भूर्मा ते सङ्गोऽस्त्वकर्मणि॥",
		Transliteration: "karmaṇy-evādhikāras te mā phaleṣhu kadāchana mā karma-phala-hetur bhūr mā te saṅgo 'stv akarmaṇi",
		EnglishMeaning:  "You have a right to perform your prescribed duty, but not to the fruits of action. Never consider yourself the cause of the results of your activities, and never be attached to not doing your duty.",
		SimilarityScore: 0.5,
	}
}
