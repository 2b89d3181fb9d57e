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
	"fmt"
	"strings"
)

// iriParts holds the five components of an IRI reference. Components are
// kept as written; has* records whether an empty component was present.
type iriParts struct {
	scheme, authority, path, query, fragment string

	hasScheme, hasAuthority, hasQuery, hasFragment bool
}

// invalidIRIChars may not appear in an IRIREF token.
const invalidIRIChars = "<>\"{}|^`\\"

func parseIRI(s string) (iriParts, error) {
	var p iriParts
	for _, r := range s {
		if r <= 0x20 || strings.ContainsRune(invalidIRIChars, r) {
			return p, fmt.Errorf("invalid character %q", r)
		}
	}
	if i := schemeEnd(s); i > 0 {
		p.scheme, p.hasScheme = s[:i], true
		s = s[i+1:]
	}
	if strings.HasPrefix(s, "//") {
		s = s[2:]
		i := strings.IndexAny(s, "/?#")
		if i < 0 {
			i = len(s)
		}
		p.authority, p.hasAuthority = s[:i], true
		s = s[i:]
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		p.fragment, p.hasFragment = s[i+1:], true
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		p.query, p.hasQuery = s[i+1:], true
		s = s[:i]
	}
	p.path = s
	return p, nil
}

// schemeEnd returns the index of the colon ending the scheme, or -1.
func schemeEnd(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		case i > 0 && c == ':':
			return i
		default:
			return -1
		}
	}
	return -1
}

func (p iriParts) String() string {
	var sb strings.Builder
	if p.hasScheme {
		sb.WriteString(p.scheme)
		sb.WriteByte(':')
	}
	if p.hasAuthority {
		sb.WriteString("//")
		sb.WriteString(p.authority)
	}
	sb.WriteString(p.path)
	if p.hasQuery {
		sb.WriteByte('?')
		sb.WriteString(p.query)
	}
	if p.hasFragment {
		sb.WriteByte('#')
		sb.WriteString(p.fragment)
	}
	return sb.String()
}

// resolve resolves the reference r against the absolute base (RFC 3986,
// section 5.2.2). The result is not normalized or re-escaped.
func (base iriParts) resolve(r iriParts) iriParts {
	var t iriParts
	switch {
	case r.hasScheme:
		t = r
		t.path = removeDotSegments(r.path)
	case r.hasAuthority:
		t = r
		t.path = removeDotSegments(r.path)
		t.scheme, t.hasScheme = base.scheme, base.hasScheme
	default:
		t.path, t.query, t.hasQuery = r.path, r.query, r.hasQuery
		switch {
		case r.path == "":
			t.path = base.path
			if !r.hasQuery {
				t.query, t.hasQuery = base.query, base.hasQuery
			}
		case r.path[0] == '/':
			t.path = removeDotSegments(r.path)
		default:
			t.path = removeDotSegments(base.merge(r.path))
		}
		t.scheme, t.hasScheme = base.scheme, base.hasScheme
		t.authority, t.hasAuthority = base.authority, base.hasAuthority
	}
	t.fragment, t.hasFragment = r.fragment, r.hasFragment
	return t
}

func (base iriParts) merge(path string) string {
	if base.hasAuthority && base.path == "" {
		return "/" + path
	}
	i := strings.LastIndexByte(base.path, '/')
	return base.path[:i+1] + path
}

// removeDotSegments interprets the "." and ".." segments of a path.
func removeDotSegments(in string) string {
	var out []string
	pop := func() {
		if len(out) != 0 {
			out = out[:len(out)-1]
		}
	}
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			pop()
		case in == "/..":
			in = "/"
			pop()
		case in == "." || in == "..":
			in = ""
		default:
			start := 0
			if in[0] == '/' {
				start = 1
			}
			end := len(in)
			if i := strings.IndexByte(in[start:], '/'); i >= 0 {
				end = start + i
			}
			out = append(out, in[:end])
			in = in[end:]
		}
	}
	return strings.Join(out, "")
}
