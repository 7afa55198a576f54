// Package presenter turns store snapshots into renderable rows. Each row owns
// the load state of its image; fetches run concurrently and a result is only
// applied to the row it was requested for, if that row still exists.
package presenter
