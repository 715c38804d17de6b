package render

import "strings"

// Markdown renders markdown content for the terminal
func Markdown(content string, opts Options) (string, error) {
	r, err := renderers.acquire(opts)
	if err != nil {
		return "", err
	}
	defer renderers.release(opts, r)

	return r.Render(content)
}

// Reply renders a backend reply, falling back to the raw text when the
// renderer cannot be built. Surrounding blank lines added by glamour are
// trimmed so replies stack tightly in the transcript.
func Reply(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
