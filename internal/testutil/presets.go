package testutil

// WithStandardRecords adds four rows covering NULL and numeric values.
func (b *Builder) WithStandardRecords() *Builder {
	return b.
		WithRecord("r1", Name("Ada Lovelace"), City("London"), Score(92), Note("first")).
		WithRecord("r2", Name("Grace Hopper"), City("Arlington"), Score(88)).
		WithRecord("r3", Name("Alan Turing"), Score(95), Note("enigma")).
		WithRecord("r4", Name("Radia Perlman"), City("Portsmouth"), Score(-1))
}
