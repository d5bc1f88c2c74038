// Package bridge is the request/response boundary between a GUI host and the
// git queries in gitctx.
//
// A host spawns `snapdiff serve` and writes one JSON request per line to its
// stdin:
//
//	{"id": 1, "command": "get_changed_files", "args": {"repoPath": "/src/app"}}
//
// and reads one JSON response per line from its stdout:
//
//	{"id": 1, "ok": true, "result": [{"path": "a.png", "filename": "a.png", "status": "added"}]}
//	{"id": 2, "ok": false, "error": "file does not exist at HEAD: ...", "kind": "FileNotAtRevision"}
//
// Command names match the host's original invoke names. Malformed lines and
// unknown commands produce a BadRequest response; the loop keeps going.
package bridge
