package commands

// SelectPlugin exports selectPlugin for testing.
var SelectPlugin = selectPlugin //nolint:gochecknoglobals // test export

// OnlyAddedLine exports onlyAddedLine for testing.
var OnlyAddedLine = onlyAddedLine //nolint:gochecknoglobals // test export
