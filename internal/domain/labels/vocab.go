package labels

type LSBClass int

const (
	LSBFailedFitting LSBClass = -1
	LSBNonLSB        LSBClass = 0
	LSBYes           LSBClass = 1
)

var lsbLabels = map[LSBClass]string{
	LSBFailedFitting: "Failed fitting",
	LSBNonLSB:        "Non-LSB",
	LSBYes:           "LSB",
}

func (c LSBClass) Valid() bool {
	_, ok := lsbLabels[c]
	return ok
}

func (c LSBClass) Label() string { return lsbLabels[c] }

func LSBClasses() []LSBClass { return []LSBClass{LSBFailedFitting, LSBNonLSB, LSBYes} }

type Morphology int

const (
	MorphFeatureless Morphology = -1
	MorphNotSure     Morphology = 0
	MorphLTG         Morphology = 1
	MorphETG         Morphology = 2
)

var morphLabels = map[Morphology]string{
	MorphFeatureless: "Featureless",
	MorphNotSure:     "Not sure (Irr/other)",
	MorphLTG:         "LTG (Sp)",
	MorphETG:         "ETG (Ell)",
}

func (m Morphology) Valid() bool {
	_, ok := morphLabels[m]
	return ok
}

func (m Morphology) Label() string { return morphLabels[m] }

func Morphologies() []Morphology {
	return []Morphology{MorphFeatureless, MorphNotSure, MorphLTG, MorphETG}
}
