// Package store holds the in-memory Category and Item stores.
//
// Each store serializes its mutations behind its own sync.RWMutex and returns
// copies from every read, so readers observe either the state before or after
// a mutation, never a partial write. When both locks are needed they are taken
// in the order CategoryStore then ItemStore:
//
//   - CategoryStore.Delete holds the category lock while it purges the
//     category's items, so no dangling item is ever observable.
//   - ItemStore.Add reads the category under the category read lock and keeps
//     it held while inserting, so an item cannot land in a category that is
//     being deleted.
//
// The ItemStore's cache of sorted views has a third lock, taken last. Cache
// hits share it for reading; only storing or dropping a view takes it for
// writing.
//
// The stores never log; every violation is returned to the caller.
package store
