package minifier

type commentAction int

const (
	dropComment commentAction = iota
	keepComment
	// keepAfterChild keeps an empty comment only when it directly follows
	// a child combinator, as in "html >/**/ body" (IE7).
	keepAfterChild
)

type commentRule struct {
	action commentAction
	text   string
}

// classifyComments decides what happens to each extracted comment.
func classifyComments(comments []string) []commentRule {
	rules := make([]commentRule, len(comments))

	for i := 0; i < len(comments); i++ {
		comment := comments[i]
		switch {
		case comment == "/**/":
			rules[i] = commentRule{action: keepAfterChild, text: "/**/"}
		case comment[len(comment)-3] == '\\':
			// IE Mac hack: "/* \*/" opens it and the next comment closes it.
			rules[i] = commentRule{action: keepComment, text: `/*\*/`}
			if i+1 < len(comments) {
				i++
				rules[i] = commentRule{action: keepComment, text: "/**/"}
			}
		case comment[2] == '!':
			rules[i] = commentRule{action: keepComment, text: comment}
		}
	}

	return rules
}

// processComments resolves the comment placeholders left by
// extractComments: kept comments move into t.Preserved, the rest vanish.
func processComments(css string, t *Tokens) string {
	rules := classifyComments(t.Comments)

	return rewritePlaceholders(css, commentTag, func(i int, prev byte) (string, bool) {
		if i >= len(rules) {
			return "", false
		}
		switch rule := rules[i]; rule.action {
		case keepComment:
			return t.preserve(rule.text), true
		case keepAfterChild:
			if prev == '>' {
				return t.preserve(rule.text), true
			}
		}
		return "", true
	})
}
