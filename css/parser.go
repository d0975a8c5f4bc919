package css

import (
	"bytes"
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses free-form CSS into Stylesheet.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Parsing never fails, anything which
// could not be understood is skipped and reported in Warnings.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				// EOF
				return sheet
			}
			p.warn(sheet, "parse error: "+parser.Err().Error())

		case css.CommentGrammar:
			text := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(string(data), "/*"), "*/"))
			if text != "" {
				sheet.Items = append(sheet.Items, StylesheetItem{Comment: &text})
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := string(data)
			if atRule != "@import" {
				p.warn(sheet, "skipping "+atRule)
				continue
			}
			if url := extractImportURL(parser.Values()); url != "" {
				sheet.Items = append(sheet.Items, StylesheetItem{Import: &url})
				p.log.Debug("Parsed @import", zap.String("url", url))
			}

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			switch atRule {
			case "@media", "@supports":
				mb := &MediaBlock{
					Name:  strings.TrimPrefix(atRule, "@"),
					Query: joinTokens(parser.Values()),
				}
				mb.Rules = p.parseGroupRules(parser, sheet)
				p.log.Debug("Parsed group rule", zap.String("rule", atRule), zap.String("query", mb.Query), zap.Int("rules", len(mb.Rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{MediaBlock: mb})
			case "@font-face":
				ff := &FontFace{Declarations: p.parseDeclarations(parser, sheet, css.EndAtRuleGrammar)}
				sheet.Items = append(sheet.Items, StylesheetItem{FontFace: ff})
			default:
				p.warn(sheet, "skipping "+atRule+" block")
				p.skipBlock(parser)
			}

		case css.BeginRulesetGrammar:
			rule := &Rule{Selector: joinSelector(parser.Values())}
			rule.Declarations = p.parseDeclarations(parser, sheet, css.EndRulesetGrammar)
			sheet.Items = append(sheet.Items, StylesheetItem{Rule: rule})
		}
	}
}

func (p *Parser) warn(sheet *Stylesheet, msg string) {
	sheet.Warnings = append(sheet.Warnings, msg)
	p.log.Debug("CSS warning", zap.String("warning", msg))
}

// parseDeclarations collects declarations in source order until end grammar.
// Custom properties keep their value verbatim.
func (p *Parser) parseDeclarations(parser *css.Parser, sheet *Stylesheet, end css.GrammarType) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()

		switch gt {
		case end:
			return decls

		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return decls
			}
			// parser recovers at the next ; or }
			p.warn(sheet, "invalid declaration: "+parser.Err().Error())

		case css.DeclarationGrammar:
			if value := joinTokens(parser.Values()); value != "" {
				decls = append(decls, Declaration{Property: string(data), Value: value})
			}

		case css.CustomPropertyGrammar:
			if values := parser.Values(); len(values) > 0 {
				if value := strings.TrimSpace(string(values[0].Data)); value != "" {
					decls = append(decls, Declaration{Property: string(data), Value: value})
				}
			}

		case css.BeginAtRuleGrammar:
			p.warn(sheet, fmt.Sprintf("skipping nested %s", data))
			p.skipBlock(parser)

		case css.BeginRulesetGrammar:
			p.warn(sheet, "skipping nested rule "+joinSelector(parser.Values()))
			p.skipBlock(parser)
		}
	}
}

// parseGroupRules parses rules inside @media or @supports block.
func (p *Parser) parseGroupRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.EndAtRuleGrammar:
			return rules

		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return rules
			}
			p.warn(sheet, "parse error: "+parser.Err().Error())

		case css.BeginAtRuleGrammar:
			p.warn(sheet, fmt.Sprintf("skipping nested %s", data))
			p.skipBlock(parser)

		case css.BeginRulesetGrammar:
			rule := Rule{Selector: joinSelector(parser.Values())}
			rule.Declarations = p.parseDeclarations(parser, sheet, css.EndRulesetGrammar)
			rules = append(rules, rule)
		}
	}
}

// skipBlock skips tokens until the end of an @-rule block or ruleset which
// was just opened.
func (p *Parser) skipBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			// url(something) - the token data is the full url(...) string
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// joinTokens rebuilds value text. The parser already collapsed whitespace
// into single whitespace tokens where it is significant.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// joinSelector rebuilds selector list putting a single space after top level
// commas: "h1,h2" becomes "h1, h2".
func joinSelector(tokens []css.Token) string {
	var sb strings.Builder
	depth := 0
	for _, t := range tokens {
		switch t.TokenType {
		case css.LeftParenthesisToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		}
		sb.Write(t.Data)
		if depth == 0 && t.TokenType == css.CommaToken {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
