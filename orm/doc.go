// Package orm stores protobuf encoded models in a KVStore.
//
// A ModelBucket owns the keys starting with its name and a colon and holds
// a single model type. A Sequence is a persistent counter, used to number
// records like the distribution cycles.
package orm
