// Copyright 2026 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sparql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errBadEscape = errors.New("invalid escape sequence")

// unquote strips the quotes of a string token and decodes its escapes.
// Long strings use three quote characters on each side.
func unquote(tok string) (string, error) {
	for _, q := range []string{`"""`, `'''`} {
		if len(tok) >= 6 && strings.HasPrefix(tok, q) && strings.HasSuffix(tok, q) {
			return unescape(tok[3:len(tok)-3], true)
		}
	}
	if len(tok) >= 2 && (tok[0] == '"' || tok[0] == '\'') && tok[len(tok)-1] == tok[0] {
		return unescape(tok[1:len(tok)-1], true)
	}
	return "", fmt.Errorf("malformed string literal %s", tok)
}

// unescape decodes \uXXXX and \UXXXXXXXX sequences, and string escapes such
// as \n or \" when echar is set.
func unescape(s string, echar bool) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", errBadEscape
		}
		i++
		switch e := s[i]; e {
		case 'u', 'U':
			n := 4
			if e == 'U' {
				n = 8
			}
			if i+1+n > len(s) {
				return "", errBadEscape
			}
			r, err := strconv.ParseUint(s[i+1:i+1+n], 16, 32)
			if err != nil || !utf8.ValidRune(rune(r)) {
				return "", errBadEscape
			}
			sb.WriteRune(rune(r))
			i += n
		case 't', 'b', 'n', 'r', 'f', '"', '\'', '\\':
			if !echar {
				return "", errBadEscape
			}
			sb.WriteByte(echars[e])
		default:
			return "", errBadEscape
		}
	}
	return sb.String(), nil
}

var echars = map[byte]byte{
	't': '\t', 'b': '\b', 'n': '\n', 'r': '\r', 'f': '\f',
	'"': '"', '\'': '\'', '\\': '\\',
}

// localEscapes are the characters a prefixed local name may escape.
const localEscapes = "_~.-!$&'()*+,;=/?#@%"

// unescapeLocal decodes the backslash escapes of a prefixed local name.
func unescapeLocal(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) || strings.IndexByte(localEscapes, s[i+1]) < 0 {
			return "", errBadEscape
		}
		i++
		sb.WriteByte(s[i])
	}
	return sb.String(), nil
}
