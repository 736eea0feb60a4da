package curve

// Built-in reference runtime tables, measured on a 2.6 GHz benchmark machine
// (see ReferenceCPUFreqMHz). Values are minutes per subject.
var builtinTables = map[string]map[int]float64{
	// AFNI @SSwarper nonlinear alignment.
	"sswarper": {
		1: 125.98, 2: 86.935, 3: 74.313, 4: 65.29,
		8: 50.255, 12: 45.99, 16: 44.35, 24: 43.75, 32: 44.4,
	},
	// afni_proc.py single-subject preprocessing.
	"afni_proc": {
		1: 23.802, 2: 20.75, 3: 19.078, 4: 18.954,
		8: 17.614, 12: 17.199, 16: 17.1055, 24: 16.937, 32: 17.129,
	},
}

// Builtin returns a store holding the built-in workflow curves.
func Builtin() *Store {
	s, err := NewStore(builtinTables)
	if err != nil {
		// The built-in tables are static and validated by tests.
		panic(err)
	}
	return s
}
