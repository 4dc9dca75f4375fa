// Package mongo registers MongoDB-backed recipe storage. Use clients/mongo to
// build the low-level client and pass it to NewStore to obtain a
// recipe.Repository that reseeds from a fixed catalog and serves reads and
// full-text searches over the recipes collection.
package mongo
