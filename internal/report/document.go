package report

// Style describes how a block is rendered in the source document.
type Style struct {
	Heading bool
	Level   int // heading depth, 0 for body text
}

// Block is a single paragraph-like unit of a clinical report.
type Block struct {
	Text  string
	Style Style
}

// Document is an ordered sequence of blocks parsed from a report file.
type Document struct {
	Blocks []Block
}

// HeadingBlock builds a heading block at the given level.
func HeadingBlock(text string, level int) Block {
	return Block{Text: text, Style: Style{Heading: true, Level: level}}
}

// BodyBlock builds a plain body text block.
func BodyBlock(text string) Block {
	return Block{Text: text}
}
