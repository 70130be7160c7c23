// Package introspection provides debugging utilities for the map2d package.
//
// IT IS NOT SUPPOSED TO BE USED IN PRODUCTIVE CODE.
//
// It takes snapshots of a map2d.Map, checks that both of its indexes describe
// the same entries and renders the content as a table or YAML document.
package introspection
