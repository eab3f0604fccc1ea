package domain

// SOA class identifiers in ascending order of coverage.
var soaClassOrder = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}

// soaClassCeilingEUR maps each SOA class to the maximum works amount it
// covers. Class VIII is unbounded.
var soaClassCeilingEUR = map[string]float64{
	"I":    258_000,
	"II":   516_000,
	"III":  1_033_000,
	"IV":   2_065_000,
	"V":    3_098_000,
	"VI":   5_165_000,
	"VII":  10_329_000,
	"VIII": 0, // unbounded, see ClassCeilingEUR
}

var soaClassRank = func() map[string]int {
	m := make(map[string]int, len(soaClassOrder))
	for i, c := range soaClassOrder {
		m[c] = i + 1
	}
	return m
}()

// KnownSOAClass reports whether s is one of the statutory classes I..VIII.
func KnownSOAClass(s string) bool {
	_, ok := soaClassRank[s]
	return ok
}

// SOAClassRank returns the ordinal of a class (I=1 .. VIII=8), or 0 for an
// unknown class.
func SOAClassRank(s string) int {
	return soaClassRank[s]
}

// ClassCeilingEUR returns the monetary ceiling covered by a class and whether
// the class is known. Class VIII reports unbounded=true.
func ClassCeilingEUR(s string) (ceiling float64, unbounded bool, ok bool) {
	if !KnownSOAClass(s) {
		return 0, false, false
	}
	if s == "VIII" {
		return 0, true, true
	}
	return soaClassCeilingEUR[s], false, true
}

// ClassCovers reports whether owning class `owned` satisfies a requirement
// for class `required`: the owned ceiling must be at least the required one.
func ClassCovers(owned, required string) bool {
	or, rr := soaClassRank[owned], soaClassRank[required]
	if or == 0 || rr == 0 {
		return false
	}
	return or >= rr
}
