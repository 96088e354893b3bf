package textpos

// LineColumn computes line and column numbers for a character offset in text.
// Lines and columns are 1-indexed (first line is 1, first column is 1).
func LineColumn(text string, offset int) (line, column int) {
	line = 1
	column = 1
	i := 0
	for _, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
		i++
	}
	return line, column
}
