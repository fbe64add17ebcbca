// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package validate

import "strings"

// Diagnostic describes one encoding violation in human-readable terms.
type Diagnostic struct {
	Message string
}

func (p Diagnostic) String() string {
	return p.Message
}

// Diagnostics accumulates the violations found in a single instruction.  It
// preserves first-seen order and suppresses duplicate messages, since
// several rules legitimately report the same violation (e.g. once per
// source operand).
type Diagnostics struct {
	items []Diagnostic
	seen  map[string]struct{}
}

// Add records a violation unless an identical message was already recorded
// for this instruction.
func (p *Diagnostics) Add(message string) {
	if p.seen == nil {
		p.seen = make(map[string]struct{})
	}

	if _, ok := p.seen[message]; ok {
		return
	}

	p.seen[message] = struct{}{}
	p.items = append(p.items, Diagnostic{message})
}

// AddIf records a violation when the given condition holds.  This is the
// shape almost every rule takes: a predicate over decoded fields paired
// with the message documenting the hardware restriction.
func (p *Diagnostics) AddIf(cond bool, message string) {
	if cond {
		p.Add(message)
	}
}

// IsEmpty reports whether no violation has been recorded.
func (p *Diagnostics) IsEmpty() bool {
	return len(p.items) == 0
}

// Items returns the recorded violations in first-seen order.
func (p *Diagnostics) Items() []Diagnostic {
	return p.items
}

// String joins all recorded messages, one per line.
func (p *Diagnostics) String() string {
	var builder strings.Builder
	//
	for i, item := range p.items {
		if i != 0 {
			builder.WriteString("\n")
		}

		builder.WriteString(item.Message)
	}

	return builder.String()
}
