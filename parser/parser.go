/*
Package parser provides the schemey reader.

	expr   := <term> | <quoted> | <list> | <dotted>
	term   := <string> | <char> | <float> | <integer> | <symbol>
	quoted := "'" <expr>
	list   := '(' <expr>* ')'
	dotted := '(' <expr>+ '.' <expr> ')'

Integers are unprefixed decimal or radix-prefixed (#o octal, #d decimal, #x
uppercase hexadecimal; #b is recognised but unsupported and fails).  Floats
require digits on both sides of the point.  Character literals are #\ followed
by a case-insensitive "space" or "newline" name or a single literal character.
String escapes are limited to \" \n \r \t and \\; anything else is rejected.
Alternatives are ordered and matched with backtracking, first match wins.
*/
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"

	"github.com/steshaw/schemey/lisp"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
	nodeDotted
	nodeQuote
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeList:    "LIST",
	nodeDotted:  "DOTTED",
	nodeQuote:   "QUOTE",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// Reader parses schemey source text.  It implements lisp.Reader so that
// environments can evaluate load forms.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read implements lisp.Reader.
func (p *Reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadAll(name, text)
}

// ReadAll parses every expression in text.  A ParseFailure is returned for
// malformed or unconsumable input.
func ReadAll(name string, text []byte) ([]*lisp.LVal, error) {
	s := parsec.NewScanner(text)
	p := newParsecParser(name)

	var vs []*lisp.LVal
	root, s := p(s)
	for root != nil {
		v := getLVal(root)
		if v != nil {
			if err := lisp.GoError(v); err != nil {
				return nil, err
			}
			vs = append(vs, v)
		}
		root, s = p(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return nil, lisp.ParseError(location(name, s.GetCursor()), "unexpected text")
	}
	return vs, nil
}

// ReadOne parses exactly one expression from text.  Trailing expressions or
// any other unconsumed input fail with a ParseFailure.
func ReadOne(name string, text []byte) (*lisp.LVal, error) {
	vs, err := ReadAll(name, text)
	if err != nil {
		return nil, err
	}
	switch len(vs) {
	case 0:
		return nil, lisp.ParseError(name, "no expression found")
	case 1:
		return vs[0], nil
	default:
		return nil, lisp.ParseError(name, "unexpected trailing expression")
	}
}

func newParsecParser(name string) parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	q := parsec.Atom("'", "QUOTE")
	dot := parsec.Atom(".", "DOT")
	str := parsec.Token(`"(?:\\.|[^"\\])*"`, "STRING")
	char := parsec.Token(`#\\(?:[Ss][Pp][Aa][Cc][Ee]|[Nn][Ee][Ww][Ll][Ii][Nn][Ee]|.)`, "CHAR")
	float := parsec.Token(`[0-9]+\.[0-9]+`, "FLOAT")
	binary := parsec.Token(`#b[01]*`, "BINARY")
	octal := parsec.Token(`#o[0-7]+`, "OCTAL")
	decimal := parsec.Token(`#d[0-9]+`, "DECIMAL_PREFIXED")
	hex := parsec.Token(`#x[0-9A-F]+`, "HEX")
	plain := parsec.Token(`[0-9]+`, "DECIMAL")
	symbol := parsec.Token(`[a-zA-Z!#$%&|*+\-/:<=>?@^_~][a-zA-Z0-9!#$%&|*+\-/:<=>?@^_~]*`, "SYMBOL")
	term := parsec.OrdChoice(astNode(name, nodeTerm),
		str,
		char,
		float,
		binary,
		octal,
		decimal,
		hex,
		plain,
		symbol, // symbol comes last because it swallows radix prefixes
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	list := parsec.And(astNode(name, nodeList), openP, parsec.Kleene(nil, &expr), closeP)
	dotted := parsec.And(astNode(name, nodeDotted), openP, parsec.Many(nil, &expr), dot, &expr, closeP)
	quoted := parsec.And(astNode(name, nodeQuote), q, &expr)
	expr = parsec.OrdChoice(nil, term, quoted, list, dotted)
	return expr
}

func astNode(name string, t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(name, t, nodes)
	}
}

func newAST(name string, typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return nodes[0]
		}
		return termLVal(name, term)
	case nodeList:
		cells, lerr := collectLVals(nodes)
		if lerr != nil {
			return lerr
		}
		return lisp.SExpr(cells)
	case nodeDotted:
		vals, lerr := collectLVals(nodes)
		if lerr != nil {
			return lerr
		}
		n := len(vals)
		return lisp.DottedList(vals[:n-1], vals[n-1])
	case nodeQuote:
		vals, lerr := collectLVals(nodes)
		if lerr != nil {
			return lerr
		}
		return lisp.Quote(vals[0])
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func termLVal(name string, t *parsec.Terminal) *lisp.LVal {
	text := t.GetValue()
	switch t.GetName() {
	case "STRING":
		s, err := unescapeString(text)
		if err != nil {
			return perrf(name, t, "%s", err)
		}
		return lisp.String(s)
	case "CHAR":
		return charLVal(text)
	case "FLOAT":
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return perrf(name, t, "bad number: %s", text)
		}
		return lisp.Float(f)
	case "BINARY":
		return perrf(name, t, "binary number literals are not supported: %s", text)
	case "OCTAL":
		return intLVal(name, t, text[2:], 8)
	case "DECIMAL_PREFIXED":
		return intLVal(name, t, text[2:], 10)
	case "HEX":
		return intLVal(name, t, text[2:], 16)
	case "DECIMAL":
		return intLVal(name, t, text, 10)
	case "SYMBOL":
		switch text {
		case "#t":
			return lisp.Bool(true)
		case "#f":
			return lisp.Bool(false)
		default:
			return lisp.Symbol(text)
		}
	default:
		return perrf(name, t, "unexpected token: %s", text)
	}
}

func intLVal(name string, t *parsec.Terminal, digits string, base int) *lisp.LVal {
	x, err := strconv.ParseInt(digits, base, strconv.IntSize)
	if err != nil {
		return perrf(name, t, "bad number: %s", t.GetValue())
	}
	return lisp.Int(int(x))
}

func charLVal(text string) *lisp.LVal {
	body := text[2:]
	switch strings.ToLower(body) {
	case "space":
		return lisp.Char(' ')
	case "newline":
		return lisp.Char('\n')
	default:
		return lisp.Char([]rune(body)[0])
	}
}

func unescapeString(text string) (string, error) {
	body := text[1 : len(text)-1]
	var buf strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			buf.WriteByte(c)
			continue
		}
		i++ // the token regexp guarantees a character follows the backslash
		switch body[i] {
		case '"':
			buf.WriteByte('"')
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case '\\':
			buf.WriteByte('\\')
		default:
			return "", fmt.Errorf(`unsupported escape sequence: \%c`, body[i])
		}
	}
	return buf.String(), nil
}

// perrf builds a ParseFailure marker value.  Markers flow through the
// combinator callbacks like ordinary values and are converted to errors at
// the top level.
func perrf(name string, t *parsec.Terminal, format string, v ...interface{}) *lisp.LVal {
	err := lisp.ParseError(location(name, t.GetPosition()), fmt.Sprintf(format, v...))
	return lisp.ErrorVal(err)
}

func location(name string, pos int) string {
	return fmt.Sprintf("%s[%d]", name, pos)
}

// collectLVals gathers the LVal children of a production, skipping the
// delimiter terminals.  The first embedded failure marker short-circuits.
func collectLVals(nodes []parsec.ParsecNode) ([]*lisp.LVal, *lisp.LVal) {
	var cells []*lisp.LVal
	for _, n := range nodes {
		v, ok := n.(*lisp.LVal)
		if !ok {
			continue // delimiter terminals like '(' and '.'
		}
		if v.Type == lisp.LError {
			return nil, v
		}
		cells = append(cells, v)
	}
	return cells, nil
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func getLVal(root parsec.ParsecNode) *lisp.LVal {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		return nil
	}
	lval, ok := nodes[0].(*lisp.LVal)
	if !ok {
		return nil
	}
	return lval
}
