package uidriver

import (
	"fmt"
	"strings"
)

// Strategy selects how a Locator finds elements.
type Strategy int

const (
	// ByName matches the name attribute.
	ByName Strategy = iota + 1
	// ByCSS matches a CSS selector.
	ByCSS
	// ByXPath matches a structural XPath expression.
	ByXPath
	// ByText matches elements of a tag whose text contains any of the
	// given alternatives.
	ByText
)

func (s Strategy) String() string {
	switch s {
	case ByName:
		return "name"
	case ByCSS:
		return "css"
	case ByXPath:
		return "xpath"
	case ByText:
		return "text"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Attr filters a Name or Text locator on an attribute value.
type Attr struct {
	Name     string
	Value    string
	Contains bool // substring match instead of equality
}

// Locator describes how to find a DOM element. Build one with Name, CSS,
// XPath or Text. Locators are values; the refining methods return copies.
type Locator struct {
	Strategy Strategy
	Value    string   // name attribute, CSS selector or XPath expression
	Tag      string   // element tag for ByName and ByText; empty means any
	Texts    []string // ByText alternatives, any one must match
	Attrs    []Attr
	Scope    *Locator // optional ancestor the element must be inside
}

// Name locates elements by their name attribute.
func Name(name string) Locator {
	return Locator{Strategy: ByName, Value: name}
}

// CSS locates elements by CSS selector.
func CSS(selector string) Locator {
	return Locator{Strategy: ByCSS, Value: selector}
}

// XPath locates elements by XPath expression.
func XPath(expr string) Locator {
	return Locator{Strategy: ByXPath, Value: expr}
}

// Text locates tag elements whose text contains any of texts.
func Text(tag string, texts ...string) Locator {
	return Locator{Strategy: ByText, Tag: tag, Texts: append([]string(nil), texts...)}
}

// With adds an attribute equality filter.
func (l Locator) With(name, value string) Locator {
	l.Attrs = append(append([]Attr(nil), l.Attrs...), Attr{Name: name, Value: value})
	return l
}

// Containing adds an attribute substring filter.
func (l Locator) Containing(name, value string) Locator {
	l.Attrs = append(append([]Attr(nil), l.Attrs...), Attr{Name: name, Value: value, Contains: true})
	return l
}

// Within restricts the locator to descendants of scope.
func (l Locator) Within(scope Locator) Locator {
	l.Scope = &scope
	return l
}

func (l Locator) String() string {
	var b strings.Builder
	if l.Scope != nil {
		b.WriteString(l.Scope.String())
		b.WriteString(" >> ")
	}
	switch l.Strategy {
	case ByText:
		fmt.Fprintf(&b, "text<%s>[%s]", l.tagOrAny(), strings.Join(l.Texts, "|"))
	default:
		fmt.Fprintf(&b, "%s=%s", l.Strategy, l.Value)
	}
	for _, a := range l.Attrs {
		op := "="
		if a.Contains {
			op = "*="
		}
		fmt.Fprintf(&b, "[@%s%s%q]", a.Name, op, a.Value)
	}
	return b.String()
}

func (l Locator) tagOrAny() string {
	if l.Tag == "" {
		return "*"
	}
	return l.Tag
}

// query is a compiled locator ready for the page.
type query struct {
	expr string
	css  bool
}

func (l Locator) compile() (query, error) {
	switch l.Strategy {
	case ByCSS:
		if l.Value == "" {
			return query{}, fmt.Errorf("%w: empty css selector", ErrInvalidLocator)
		}
		if len(l.Attrs) > 0 {
			return query{}, fmt.Errorf("%w: attribute filters need an xpath strategy", ErrInvalidLocator)
		}
		if l.Scope == nil {
			return query{expr: l.Value, css: true}, nil
		}
		scope, err := l.Scope.compile()
		if err != nil {
			return query{}, err
		}
		if !scope.css {
			return query{}, fmt.Errorf("%w: css locator inside xpath scope", ErrInvalidLocator)
		}
		return query{expr: scope.expr + " " + l.Value, css: true}, nil
	case ByName, ByXPath, ByText:
		expr, err := l.xpath()
		if err != nil {
			return query{}, err
		}
		if l.Scope == nil {
			return query{expr: expr}, nil
		}
		scope, err := l.Scope.compile()
		if err != nil {
			return query{}, err
		}
		if scope.css {
			return query{}, fmt.Errorf("%w: xpath locator inside css scope", ErrInvalidLocator)
		}
		if !strings.HasPrefix(expr, "/") {
			return query{}, fmt.Errorf("%w: scoped xpath %q must start with /", ErrInvalidLocator, expr)
		}
		return query{expr: scope.expr + expr}, nil
	default:
		return query{}, fmt.Errorf("%w: unknown strategy %d", ErrInvalidLocator, int(l.Strategy))
	}
}

// XPathExpr returns the XPath expression the locator compiles to.
func (l Locator) XPathExpr() (string, error) {
	q, err := l.compile()
	if err != nil {
		return "", err
	}
	if q.css {
		return "", fmt.Errorf("%w: css locator has no xpath form", ErrInvalidLocator)
	}
	return q.expr, nil
}

func (l Locator) xpath() (string, error) {
	var preds []string
	switch l.Strategy {
	case ByXPath:
		if l.Value == "" {
			return "", fmt.Errorf("%w: empty xpath", ErrInvalidLocator)
		}
		if len(l.Attrs) == 0 {
			return l.Value, nil
		}
		// Filters apply to the whole expression.
		return "(" + l.Value + ")" + attrPredicates(l.Attrs), nil
	case ByName:
		if l.Value == "" {
			return "", fmt.Errorf("%w: empty name", ErrInvalidLocator)
		}
		preds = append(preds, "@name="+xpathLiteral(l.Value))
	case ByText:
		// Without a tag every ancestor's string value would match as
		// well, so only the element's own text nodes are considered.
		format := "contains(normalize-space(.), %s)"
		if l.tagOrAny() == "*" {
			format = "text()[contains(normalize-space(.), %s)]"
		}
		var alts []string
		for _, t := range l.Texts {
			if t != "" {
				alts = append(alts, fmt.Sprintf(format, xpathLiteral(Normalize(t))))
			}
		}
		if len(alts) == 0 {
			return "", fmt.Errorf("%w: text locator without text", ErrInvalidLocator)
		}
		preds = append(preds, strings.Join(alts, " or "))
	}
	expr := "//" + l.tagOrAny()
	for _, p := range preds {
		expr += "[" + p + "]"
	}
	return expr + attrPredicates(l.Attrs), nil
}

func attrPredicates(attrs []Attr) string {
	var b strings.Builder
	for _, a := range attrs {
		if a.Contains {
			fmt.Fprintf(&b, "[contains(@%s, %s)]", a.Name, xpathLiteral(a.Value))
		} else {
			fmt.Fprintf(&b, "[@%s=%s]", a.Name, xpathLiteral(a.Value))
		}
	}
	return b.String()
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape
// sequences, so strings holding both quote kinds are built with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	args := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			args = append(args, `"'"`)
		}
		if p != "" {
			args = append(args, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(args, ", ") + ")"
}
