package tmplgo

// terminator reports why parseBody stopped collecting nodes: it either ran
// out of input (termNone) or swallowed one of the block-boundary tokens
// spec §9's redesign note threads through a typed return instead of an
// error channel. termIn exists only so a stray Keyword(In) outside a
// {{ for }} header is reported the same way as any other misplaced
// terminator; the grammar never produces it as a legitimate signal.
type terminator int

const (
	termNone terminator = iota
	termElif
	termElse
	termEnd
	termIn
)

func (t terminator) String() string {
	switch t {
	case termElif:
		return "{{ elif }}"
	case termElse:
		return "{{ else }}"
	case termEnd:
		return "{{ / }}"
	case termIn:
		return "{{ in }}"
	default:
		return "end of input"
	}
}

// parser turns a token stream into an AST. It holds at most one pushed-back
// token, which is all the grammar in spec §4.3 ever needs to look ahead.
type parser struct {
	lex      *lexer
	buffered *Token
}

func parseAll(src string) (*BodyNode, error) {
	p := &parser{lex: newLexer(src)}
	nodes, term, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if term != termNone {
		return nil, &ParseError{Msg: "unexpected " + term.String() + " with no matching opening tag"}
	}
	return &BodyNode{Children: nodes}, nil
}

func (p *parser) nextToken() (*Token, error) {
	if p.buffered != nil {
		tok := p.buffered
		p.buffered = nil
		return tok, nil
	}
	return p.lex.next()
}

// restore pushes tok back so the next nextToken call returns it again.
func (p *parser) restore(tok *Token) {
	if p.buffered != nil {
		panic("tmplgo: parser.restore called with a token already buffered")
	}
	p.buffered = tok
}

// expectToken is nextToken, but end of input is an error rather than (nil, nil).
func (p *parser) expectToken() (*Token, error) {
	tok, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, errUnexpectedEOF()
	}
	return tok, nil
}

func (p *parser) expectKind(kind TokenKind, context string) (*Token, error) {
	tok, err := p.expectToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind != kind {
		return nil, errUnexpectedToken(tok, context)
	}
	return tok, nil
}

func (p *parser) expectKeyword(kw Keyword, context string) error {
	tok, err := p.expectToken()
	if err != nil {
		return err
	}
	if tok.Kind != TokenKeyword || tok.Keyword != kw {
		return errUnexpectedToken(tok, context)
	}
	return nil
}

// parseBody collects sibling nodes — text runs, expressions, and nested
// constructs — until it runs out of input or meets a block-boundary token
// it doesn't own (elif, else, the "/" of a closing tag). It never consumes
// the boundary token's continuation itself; that's the owning parseIf/
// parseFor's job, per the dispatch table below.
func (p *parser) parseBody() ([]Node, terminator, error) {
	var nodes []Node
	for {
		tok, err := p.nextToken()
		if err != nil {
			return nodes, termNone, err
		}
		if tok == nil {
			return nodes, termNone, nil
		}
		switch tok.Kind {
		case TokenText:
			nodes = append(nodes, &ValueNode{Value: String(tok.Text)})
		case TokenTemplateOpen:
			node, term, err := p.parseTemplate()
			if err != nil {
				return nodes, termNone, err
			}
			if term != termNone {
				return nodes, term, nil
			}
			nodes = append(nodes, node)
		default:
			return nodes, termNone, errUnexpectedToken(tok, "document")
		}
	}
}

// parseTemplate handles everything between a consumed `{{` and its matching
// `}}`. For a plain expression it consumes the closing `}}` itself. For
// if/for it delegates to parseIf/parseFor — which stop right after the
// keyword closing their construct (e.g. the "if" of "{{/if}}") — and then
// consumes the trailing `}}` uniformly here, per spec §4.3's note that the
// outer parse_template owns that final token regardless of which branch of
// the construct actually terminated it.
func (p *parser) parseTemplate() (Node, terminator, error) {
	tok, err := p.expectToken()
	if err != nil {
		return nil, termNone, err
	}

	if tok.Kind == TokenKeyword {
		switch tok.Keyword {
		case KeywordIf:
			node, err := p.parseIf()
			if err != nil {
				return nil, termNone, err
			}
			if _, err := p.expectKind(TokenTemplateClose, "if"); err != nil {
				return nil, termNone, err
			}
			return node, termNone, nil
		case KeywordFor:
			node, err := p.parseFor()
			if err != nil {
				return nil, termNone, err
			}
			if _, err := p.expectKind(TokenTemplateClose, "for"); err != nil {
				return nil, termNone, err
			}
			return node, termNone, nil
		case KeywordElif:
			return nil, termElif, nil
		case KeywordElse:
			return nil, termElse, nil
		case KeywordIn:
			return nil, termIn, nil
		}
	}
	if tok.Kind == TokenOperator && tok.Operator == OpDivide {
		return nil, termEnd, nil
	}

	p.restore(tok)
	expr, err := p.parseExpr()
	if err != nil {
		return nil, termNone, err
	}
	if _, err := p.expectKind(TokenTemplateClose, "expression"); err != nil {
		return nil, termNone, err
	}
	return expr, termNone, nil
}

// parseIf parses everything after an already-consumed Keyword(If): the
// condition, the then-body, and whichever of elif/else/{{/if}} closes it.
// It stops right after consuming the closing "if" keyword, leaving the
// trailing `}}` for parseTemplate to consume.
func (p *parser) parseIf() (Node, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(TokenTemplateClose, "if condition"); err != nil {
		return nil, err
	}

	thenNodes, term, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	then := &BodyNode{Children: thenNodes}

	switch term {
	case termElif:
		// The "elif" keyword is already consumed; parsing its condition and
		// body is exactly what parsing an "if" does, so recurse and wrap
		// the result in a single-child Body to keep invariant 2 (every
		// else branch is itself a Body node) true for elif chains too.
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		return &IfThenElseNode{Cond: cond, Then: then, Else: &BodyNode{Children: []Node{nested}}}, nil

	case termElse:
		if _, err := p.expectKind(TokenTemplateClose, "else"); err != nil {
			return nil, err
		}
		elseNodes, term2, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		if term2 != termEnd {
			return nil, &ParseError{Msg: "unterminated {{ if }}: expected {{ /if }}, found " + term2.String()}
		}
		if err := p.expectKeyword(KeywordIf, "endif"); err != nil {
			return nil, err
		}
		return &IfThenElseNode{Cond: cond, Then: then, Else: &BodyNode{Children: elseNodes}}, nil

	case termEnd:
		if err := p.expectKeyword(KeywordIf, "endif"); err != nil {
			return nil, err
		}
		return &IfThenElseNode{Cond: cond, Then: then, Else: nil}, nil

	default:
		return nil, &ParseError{Msg: "unterminated {{ if }}: expected {{ elif }}, {{ else }}, or {{ /if }}, found " + term.String()}
	}
}

// parseFor parses everything after an already-consumed Keyword(For): the
// loop variable, "in", the iterable, an optional separator expression, the
// body, and the closing "for" keyword of {{ /for }}.
func (p *parser) parseFor() (Node, error) {
	idTok, err := p.expectKind(TokenIdentifier, "for")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(KeywordIn, "for"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	// A second expression is present exactly when the token right after
	// the iterable isn't the closing `}}` — that's the separator.
	var separator Node
	tok, err := p.expectToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenTemplateClose {
		// no separator; already consumed the close.
	} else {
		p.restore(tok)
		separator, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKind(TokenTemplateClose, "for separator"); err != nil {
			return nil, err
		}
	}

	bodyNodes, term, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if term != termEnd {
		return nil, &ParseError{Msg: "unterminated {{ for }}: expected {{ /for }}, found " + term.String()}
	}
	if err := p.expectKeyword(KeywordFor, "endfor"); err != nil {
		return nil, err
	}

	return &ForInNode{Var: idTok.Text, Iterable: iterable, Body: &BodyNode{Children: bodyNodes}, Separator: separator}, nil
}
