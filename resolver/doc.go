// Package resolver answers path lookups over a configuration tree whose
// nodes are directories, files and values nested inside files.
//
// A path is split into the longest prefix that exists on the filesystem and
// an in-content suffix. The prefix is loaded through the cache (a file via
// its loader, a directory as a mapping of child name to child value) and the
// suffix segments then index into the loaded value: mapping lookup by exact
// key or sequence lookup by non-negative integer.
//
// Given the tree
//
//	/etc/app/
//	    server.json      {"listen": {"port": 8080}}
//	    db/
//	        host         localhost
//
// the paths "server.json/listen/port", "db/host" and "db" resolve below
// /etc/app to 8080, "localhost" and map[string]any{"host": "localhost"}.
//
// Reloading a directory rebuilds its mapping from the cached values of its
// children; it does not reload them. Use ReloadTree to refresh a whole
// subtree.
package resolver
