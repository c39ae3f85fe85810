// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

// parser is a recursive-descent parser with one token of lookahead. It
// holds no state beyond the current and next token, following the
// teacher's preference for small, explicit structs over parser-generator
// machinery (this compiler parses .proto text natively rather than
// shelling out to protoc, so there is no descriptor to walk instead).
type parser struct {
	lex  *lexer
	path string
	tok  token
	peek *token
	doc  string
}

// Parse lexes and parses a single .proto file's contents into a ParseTree.
// Any syntax error is wrapped as *ParseError and returned immediately,
// per spec.md §4.1's "refuse to produce any artifact from that file".
func Parse(path, contents string) (*ParseTree, error) {
	p := &parser{lex: newLexer(path, contents), path: path}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseFile()
}

// advance fetches the next token, transparently consuming and storing any
// doc comment that immediately precedes it.
func (p *parser) advance() error {
	for {
		t, err := p.lex.next()
		if err != nil {
			return err
		}
		if t.Kind == tokDocComment {
			p.doc = t.Text
			continue
		}
		p.tok = t
		return nil
	}
}

// takeDoc returns and clears the doc comment accumulated for the
// declaration about to be parsed.
func (p *parser) takeDoc() string {
	d := p.doc
	p.doc = ""
	return d
}

func (p *parser) atEOF() bool { return p.tok.Kind == tokEOF }

func (p *parser) isIdent(text string) bool {
	return p.tok.Kind == tokIdent && p.tok.Text == text
}

func (p *parser) isSymbol(text string) bool {
	return p.tok.Kind == tokSymbol && p.tok.Text == text
}

func (p *parser) expectSymbol(text string) error {
	if !p.isSymbol(text) {
		return p.errorf("expected %q, got %q", text, p.tok.Text)
	}
	return p.advance()
}

func (p *parser) expectIdent() (string, error) {
	if p.tok.Kind != tokIdent {
		return "", p.errorf("expected identifier, got %q", p.tok.Text)
	}
	text := p.tok.Text
	return text, p.advance()
}

func (p *parser) expectInt() (int32, error) {
	if p.tok.Kind != tokInt {
		return 0, p.errorf("expected integer, got %q", p.tok.Text)
	}
	n := int32(p.tok.IntVal)
	return n, p.advance()
}

func (p *parser) expectString() (string, error) {
	if p.tok.Kind != tokString {
		return "", p.errorf("expected string literal, got %q", p.tok.Text)
	}
	text := p.tok.Text
	return text, p.advance()
}

func (p *parser) parseFile() (*ParseTree, error) {
	tree := &ParseTree{Path: p.path}
	for !p.atEOF() {
		switch {
		case p.isIdent("syntax"):
			if err := p.parseSyntax(tree); err != nil {
				return nil, err
			}
		case p.isIdent("package"):
			if err := p.parsePackage(tree); err != nil {
				return nil, err
			}
		case p.isIdent("import"):
			if err := p.parseImport(tree); err != nil {
				return nil, err
			}
		case p.isIdent("option"):
			if err := p.parseFileOption(tree); err != nil {
				return nil, err
			}
		case p.isIdent("message"):
			msg, err := p.parseMessage()
			if err != nil {
				return nil, err
			}
			tree.Messages = append(tree.Messages, msg)
		case p.isIdent("enum"):
			en, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			tree.Enums = append(tree.Enums, en)
		case p.isSymbol(";"):
			if err := p.advance(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf("unexpected top-level token %q", p.tok.Text)
		}
	}
	return tree, nil
}

func (p *parser) parseSyntax(tree *ParseTree) error {
	if err := p.advance(); err != nil { // consume 'syntax'
		return err
	}
	if err := p.expectSymbol("="); err != nil {
		return err
	}
	value, err := p.expectString()
	if err != nil {
		return err
	}
	tree.Syntax = value
	return p.expectSymbol(";")
}

func (p *parser) parsePackage(tree *ParseTree) error {
	if err := p.advance(); err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	tree.Package = name
	return p.expectSymbol(";")
}

func (p *parser) parseImport(tree *ParseTree) error {
	if err := p.advance(); err != nil {
		return err
	}
	// `import public "x.proto";` / `import weak "x.proto";` modifiers are
	// accepted and ignored: neither changes which symbols this compiler
	// makes visible, since internal/lookup aggregates every file in the
	// compile regardless of import visibility rules.
	if p.tok.Kind == tokIdent && (p.tok.Text == "public" || p.tok.Text == "weak") {
		if err := p.advance(); err != nil {
			return err
		}
	}
	path, err := p.expectString()
	if err != nil {
		return err
	}
	tree.Imports = append(tree.Imports, path)
	return p.expectSymbol(";")
}

func (p *parser) parseFileOption(tree *ParseTree) error {
	if err := p.advance(); err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.expectSymbol("="); err != nil {
		return err
	}
	value, err := p.parseOptionValue()
	if err != nil {
		return err
	}
	if name == "java_package" {
		tree.JavaPackage = value
	}
	// Any other file-level option is an UnknownOption (spec.md §7): a
	// warning, not a parse failure, so it is simply dropped here.
	return p.expectSymbol(";")
}

// parseOptionValue accepts either a string literal or a bare identifier
// (covers boolean/enum option values like `deprecated = true`).
func (p *parser) parseOptionValue() (string, error) {
	if p.tok.Kind == tokString {
		return p.expectString()
	}
	if p.tok.Kind == tokIdent {
		return p.expectIdent()
	}
	if p.tok.Kind == tokInt {
		text := p.tok.Text
		return text, p.advance()
	}
	return "", p.errorf("expected option value, got %q", p.tok.Text)
}

func (p *parser) parseMessage() (*MessageNode, error) {
	doc := p.takeDoc()
	if err := p.advance(); err != nil { // consume 'message'
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	msg := &MessageNode{Name: name, Doc: doc}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	for !p.isSymbol("}") {
		if p.atEOF() {
			return nil, p.errorf("unexpected EOF in message %s", name)
		}
		if err := p.parseMessageMember(msg); err != nil {
			return nil, err
		}
	}
	return msg, p.expectSymbol("}")
}

func (p *parser) parseMessageMember(msg *MessageNode) error {
	switch {
	case p.isIdent("message"):
		nested, err := p.parseMessage()
		if err != nil {
			return err
		}
		msg.Messages = append(msg.Messages, nested)
		return nil
	case p.isIdent("enum"):
		en, err := p.parseEnum()
		if err != nil {
			return err
		}
		msg.Enums = append(msg.Enums, en)
		return nil
	case p.isIdent("oneof"):
		oo, err := p.parseOneOf()
		if err != nil {
			return err
		}
		msg.OneOfs = append(msg.OneOfs, oo)
		return nil
	case p.isIdent("reserved"):
		ranges, err := p.parseReserved()
		if err != nil {
			return err
		}
		msg.Reserved = append(msg.Reserved, ranges...)
		return nil
	case p.isIdent("option"):
		return p.parseMessageOption(msg)
	case p.isSymbol(";"):
		return p.advance()
	default:
		field, err := p.parseField()
		if err != nil {
			return err
		}
		msg.Fields = append(msg.Fields, field)
		return nil
	}
}

func (p *parser) parseMessageOption(msg *MessageNode) error {
	if err := p.advance(); err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.expectSymbol("="); err != nil {
		return err
	}
	value, err := p.parseOptionValue()
	if err != nil {
		return err
	}
	if name == "deprecated" && value == "true" {
		msg.Deprecated = true
	}
	return p.expectSymbol(";")
}

// parseField parses one field declaration, including the `map<K, V>` form
// (recognized here, rejected later by schema.Validate per spec.md §7).
func (p *parser) parseField() (*FieldNode, error) {
	doc := p.takeDoc()
	field := &FieldNode{Doc: doc}

	if p.isIdent("repeated") {
		field.Repeated = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else if p.isIdent("optional") {
		field.Optional = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.isIdent("map") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("<"); err != nil {
			return nil, err
		}
		keyType, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(","); err != nil {
			return nil, err
		}
		valueType, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(">"); err != nil {
			return nil, err
		}
		field.MapKeyType = keyType
		field.MapValueType = valueType
		field.Repeated = true
	} else {
		typeName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		field.TypeName = typeName
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	field.Name = name

	if err := p.expectSymbol("="); err != nil {
		return nil, err
	}
	number, err := p.expectInt()
	if err != nil {
		return nil, err
	}
	field.Number = number

	if p.isSymbol("[") {
		if err := p.parseFieldOptions(field); err != nil {
			return nil, err
		}
	}

	return field, p.expectSymbol(";")
}

func (p *parser) parseFieldOptions(field *FieldNode) error {
	if err := p.expectSymbol("["); err != nil {
		return err
	}
	for {
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		if err := p.expectSymbol("="); err != nil {
			return err
		}
		value, err := p.parseOptionValue()
		if err != nil {
			return err
		}
		if name == "deprecated" && value == "true" {
			field.Deprecated = true
		}
		if p.isSymbol(",") {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	return p.expectSymbol("]")
}

func (p *parser) parseOneOf() (*OneOfNode, error) {
	doc := p.takeDoc()
	if err := p.advance(); err != nil { // consume 'oneof'
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	oo := &OneOfNode{Name: name, Doc: doc}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	for !p.isSymbol("}") {
		if p.atEOF() {
			return nil, p.errorf("unexpected EOF in oneof %s", name)
		}
		if p.isSymbol(";") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		oo.Fields = append(oo.Fields, field)
	}
	return oo, p.expectSymbol("}")
}

func (p *parser) parseReserved() ([]ReservedRange, error) {
	if err := p.advance(); err != nil { // consume 'reserved'
		return nil, err
	}
	var ranges []ReservedRange
	for {
		// Reserved names (`reserved "foo";`) are accepted and ignored:
		// this compiler identifies fields by number, not name, for
		// reservation purposes.
		if p.tok.Kind == tokString {
			if _, err := p.expectString(); err != nil {
				return nil, err
			}
		} else {
			from, err := p.expectInt()
			if err != nil {
				return nil, err
			}
			to := from
			if p.isIdent("to") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				if p.isIdent("max") {
					to = 1<<29 - 1
					if err := p.advance(); err != nil {
						return nil, err
					}
				} else {
					to, err = p.expectInt()
					if err != nil {
						return nil, err
					}
				}
			}
			ranges = append(ranges, ReservedRange{From: from, To: to})
		}
		if p.isSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return ranges, p.expectSymbol(";")
}

func (p *parser) parseEnum() (*EnumNode, error) {
	doc := p.takeDoc()
	if err := p.advance(); err != nil { // consume 'enum'
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	en := &EnumNode{Name: name, Doc: doc}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	for !p.isSymbol("}") {
		if p.atEOF() {
			return nil, p.errorf("unexpected EOF in enum %s", name)
		}
		if p.isIdent("option") {
			if err := p.parseEnumOption(); err != nil {
				return nil, err
			}
			continue
		}
		if p.isIdent("reserved") {
			if _, err := p.parseReserved(); err != nil {
				return nil, err
			}
			continue
		}
		if p.isSymbol(";") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		value, err := p.parseEnumValue()
		if err != nil {
			return nil, err
		}
		en.Values = append(en.Values, value)
	}
	return en, p.expectSymbol("}")
}

func (p *parser) parseEnumOption() error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expectIdent(); err != nil {
		return err
	}
	if err := p.expectSymbol("="); err != nil {
		return err
	}
	if _, err := p.parseOptionValue(); err != nil {
		return err
	}
	return p.expectSymbol(";")
}

func (p *parser) parseEnumValue() (*EnumValueNode, error) {
	doc := p.takeDoc()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("="); err != nil {
		return nil, err
	}
	number, err := p.expectInt()
	if err != nil {
		return nil, err
	}
	value := &EnumValueNode{Name: name, Number: number, Doc: doc}
	if p.isSymbol("[") {
		if err := p.parseEnumValueOptions(value); err != nil {
			return nil, err
		}
	}
	return value, p.expectSymbol(";")
}

func (p *parser) parseEnumValueOptions(value *EnumValueNode) error {
	if err := p.expectSymbol("["); err != nil {
		return err
	}
	for {
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		if err := p.expectSymbol("="); err != nil {
			return err
		}
		optValue, err := p.parseOptionValue()
		if err != nil {
			return err
		}
		if name == "deprecated" && optValue == "true" {
			value.Deprecated = true
		}
		if p.isSymbol(",") {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	return p.expectSymbol("]")
}
