package store

// batchOp is a single queued write. A nil value with del set is a delete.
type batchOp struct {
	key   []byte
	value []byte
	del   bool
}

// memBatch queues writes and applies them to the target in the order they
// were added. It is not atomic on its own and relies on the target to be an
// in-memory layer, such as a cache wrap or a tree that is committed later.
type memBatch struct {
	target SetDeleter
	ops    []batchOp
}

// NewBatch returns a batch applying its writes to the target on Write.
func NewBatch(target SetDeleter) Batch {
	return &memBatch{target: target}
}

func (b *memBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, batchOp{key: key, value: value})
	return nil
}

func (b *memBatch) Delete(key []byte) error {
	b.ops = append(b.ops, batchOp{key: key, del: true})
	return nil
}

// Write applies the queued writes and resets the batch. It stops at the
// first failing write.
func (b *memBatch) Write() error {
	ops := b.ops
	b.ops = nil
	for _, op := range ops {
		var err error
		if op.del {
			err = b.target.Delete(op.key)
		} else {
			err = b.target.Set(op.key, op.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
