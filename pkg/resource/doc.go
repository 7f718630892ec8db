// Package resource tracks the simulated existence of ARM resources.
//
// A Pool is a trie keyed by lower-cased path segments. Creating a resource
// realizes the node at the end of its path and scaffolds any missing
// ancestors; deleting clears the node and prunes it. With cascading enabled,
// resources at management levels (see arm.IsManagementLevel) can only be
// created under an existing parent, and deleting a resource removes its whole
// subtree.
package resource
