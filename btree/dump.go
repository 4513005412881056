// Copyright 2022 Sogang University
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

package btree

import (
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump writes the node structure of the tree to w, one line per node with
// the keys it holds.
func (t *Tree[K, V]) Dump(w io.Writer) error {
	tree := treeprint.NewWithRoot(fmt.Sprintf("btree len=%d height=%d", t.Len(), t.Height()))
	if t.root != nil {
		t.root.dump(tree)
	}
	_, err := io.WriteString(w, tree.String())
	return err
}

func (n *node[K, V]) dump(tree treeprint.Tree) {
	keys := make([]string, 0, len(n.entries))
	for _, e := range n.entries {
		keys = append(keys, fmt.Sprint(e.Key))
	}
	label := "[" + strings.Join(keys, " ") + "]"
	if n.leaf() {
		tree.AddNode(label)
		return
	}
	branch := tree.AddBranch(label)
	for _, child := range n.children {
		child.dump(branch)
	}
}
