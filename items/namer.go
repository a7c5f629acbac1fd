// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"fmt"
	"sync"
)

// Namer generates default item titles like "Image #3". Each plot or
// builder owns its own Namer, so counters are scoped to the container
// rather than shared process-wide, and concurrent builders do not race.
type Namer struct {
	mu   sync.Mutex
	next map[string]int
}

// NewNamer returns a Namer with all counters at 1.
func NewNamer() *Namer {
	return &Namer{next: map[string]int{}}
}

// Name returns the next title for the given kind, e.g. "Image #1".
func (n *Namer) Name(kind string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next[kind]++
	return fmt.Sprintf("%s #%d", kind, n.next[kind])
}
