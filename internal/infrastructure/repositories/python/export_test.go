package python

// RenderKeyValue exports renderKeyValue for testing.
var RenderKeyValue = renderKeyValue //nolint:gochecknoglobals // test export

// WriteFileAtomic exports writeFileAtomic for testing.
var WriteFileAtomic = writeFileAtomic //nolint:gochecknoglobals // test export

// RenderAfterAppend parses content, appends block and renders the result through the decode check.
func RenderAfterAppend(path, content string, block ...string) (string, error) {
	doc, err := parseTOMLDocument(path, content)
	if err != nil {
		return "", err
	}
	doc.appendBlock(block...)
	return doc.render()
}
