package hashstate

import (
	"fmt"
	"reflect"
	"unsafe"
)

// KeyWriter feeds a key's bytes into a Hasher. The table engine never
// hashes a key itself; it asks the Map facade for a KeyWriter and the
// facade asks the HashState for a Hasher, keeping the two concerns
// (serialize-the-key vs. finalize-a-digest) independent, per spec §4.6.
type KeyWriter[K any] func(K, Hasher)

// DefaultKeyWriter returns a KeyWriter for Go's built-in comparable kinds.
// The kind of K is resolved once via reflection when DefaultKeyWriter is
// called; the returned closure does no further reflection or kind
// dispatch at hash time. This is the same "reflect once at construction, branch
// on basic kind" shape as the teacher's hash.go GetHasher[Key](), adapted
// to write bytes into a pluggable Hasher instead of computing a
// non-keyed digest directly.
func DefaultKeyWriter[K any]() KeyWriter[K] {
	var zero K
	kind := reflect.TypeOf(&zero).Elem().Kind()

	switch kind {
	case reflect.String:
		return func(k K, h Hasher) {
			h.WriteString(*(*string)(unsafe.Pointer(&k)))
		}

	case reflect.Int, reflect.Uint, reflect.Uintptr,
		reflect.Int64, reflect.Uint64:
		return func(k K, h Hasher) {
			h.WriteUint64(*(*uint64)(unsafe.Pointer(&k)))
		}

	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return func(k K, h Hasher) {
			h.WriteUint64(uint64(*(*uint32)(unsafe.Pointer(&k))))
		}

	case reflect.Int16, reflect.Uint16:
		return func(k K, h Hasher) {
			h.WriteUint64(uint64(*(*uint16)(unsafe.Pointer(&k))))
		}

	case reflect.Int8, reflect.Uint8, reflect.Bool:
		return func(k K, h Hasher) {
			h.WriteUint64(uint64(*(*uint8)(unsafe.Pointer(&k))))
		}

	case reflect.Float64:
		return func(k K, h Hasher) {
			h.WriteUint64(*(*uint64)(unsafe.Pointer(&k)))
		}

	default:
		panic(fmt.Sprintf("rhtable: no default key writer for kind %v", kind))
	}
}
