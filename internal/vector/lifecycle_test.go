package vector

import (
	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/veclib/internal/alloc"
)

var errRefused = errors.New("refused")

type journal struct {
	constructed []string
	destroyed   []string
}

// resource records its lifecycle in a journal shared by every element.
type resource struct {
	name   string
	fail   bool
	log    *journal
	opened bool
}

func (r *resource) Construct() error {
	if r.fail {
		return errRefused
	}
	r.opened = true
	r.log.constructed = append(r.log.constructed, r.name)
	return nil
}

func (r *resource) Destroy() {
	r.log.destroyed = append(r.log.destroyed, r.name)
}

// handle has a value-receiver hook.
type handle struct {
	id  int
	log *journal
}

func (h handle) Destroy() {
	h.log.destroyed = append(h.log.destroyed, "handle")
}

var _ = Describe("Vector lifecycle", func() {
	var (
		log      *journal
		counting *alloc.Counting[resource]
		v        *Vector[resource]
	)

	BeforeEach(func() {
		log = &journal{}
		counting = alloc.NewCounting[resource](alloc.Heap[resource]{})
		var err error
		v, err = New(WithAllocator[resource](counting))
		Expect(err).NotTo(HaveOccurred())
	})

	appendNamed := func(names ...string) {
		for _, n := range names {
			Expect(v.Append(resource{name: n, log: log})).To(Succeed())
		}
	}

	It("constructs each element in place as it is appended", func() {
		appendNamed("a", "b", "c")

		Expect(log.constructed).To(Equal([]string{"a", "b", "c"}))
		for x := range v.Values() {
			Expect(x.opened).To(BeTrue())
		}
	})

	It("does not insert an element whose construction fails", func() {
		appendNamed("a")
		err := v.Append(resource{name: "bad", fail: true, log: log})

		Expect(err).To(MatchError(errRefused))
		Expect(v.Len()).To(Equal(1))
		Expect(log.constructed).To(Equal([]string{"a"}))
	})

	It("never destroys elements while growing", func() {
		appendNamed("a", "b", "c", "d", "e")

		Expect(v.Cap()).To(Equal(8))
		Expect(log.destroyed).To(BeEmpty())
	})

	It("destroys live elements in index order on release", func() {
		appendNamed("a", "b", "c")
		v.Release()

		Expect(log.destroyed).To(Equal([]string{"a", "b", "c"}))
		Expect(counting.LiveBlocks()).To(BeZero())
		Expect(counting.Allocations()).To(Equal(counting.Deallocations()))
	})

	It("leaves slack slots untouched on release", func() {
		Expect(v.Reserve(32)).To(Succeed())
		appendNamed("only")
		v.Release()

		Expect(log.destroyed).To(ConsistOf("only"))
	})

	It("stores pointer elements without running the pointee's hooks", func() {
		r := &resource{name: "shared", log: log}
		ptrs, err := Of(r, r)
		Expect(err).NotTo(HaveOccurred())
		Expect(ptrs.Append(nil)).To(Succeed())

		Expect(ptrs.Len()).To(Equal(3))
		Expect(ptrs.Slice()[2]).To(BeNil())
		Expect(r.opened).To(BeFalse())

		ptrs.Release()
		Expect(log.constructed).To(BeEmpty())
		Expect(log.destroyed).To(BeEmpty())
	})

	It("finds value-receiver hooks", func() {
		h, err := Of(handle{1, log}, handle{2, log})
		Expect(err).NotTo(HaveOccurred())
		h.Release()

		Expect(log.destroyed).To(HaveLen(2))
	})

	Context("when the allocator refuses to grow", func() {
		BeforeEach(func() {
			limited := alloc.NewCounting[resource](alloc.Heap[resource]{MaxSlots: 2})
			var err error
			v, err = New(WithAllocator[resource](limited))
			Expect(err).NotTo(HaveOccurred())
			appendNamed("a", "b")
		})

		It("reports ErrAllocation and keeps the old contents", func() {
			err := v.Append(resource{name: "c", log: log})

			Expect(errors.Is(err, ErrAllocation)).To(BeTrue())
			Expect(v.Len()).To(Equal(2))
			Expect(v.Cap()).To(Equal(2))
			Expect(log.constructed).To(Equal([]string{"a", "b"}))
		})
	})

	Context("cursors", func() {
		It("span exactly the live region", func() {
			appendNamed("a", "b", "c")
			Expect(v.Reserve(16)).To(Succeed())

			var names []string
			for c := v.Begin(); !c.Equal(v.End()); c = c.Next() {
				names = append(names, c.Value().name)
			}
			Expect(names).To(Equal([]string{"a", "b", "c"}))
		})

		It("are restartable", func() {
			appendNamed("a", "b")
			for range 2 {
				it := v.Iter()
				n := 0
				for it.More() {
					it.Next()
					n++
				}
				Expect(n).To(Equal(2))
			}
		})

		It("allow in-place mutation", func() {
			appendNamed("a")
			v.Begin().Ptr().name = "z"

			x, err := v.At(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(x.name).To(Equal("z"))
		})

		It("panic when used after the vector grows", func() {
			appendNamed("a")
			c := v.Begin()
			it := v.Iter()
			appendNamed("b")

			Expect(func() { c.Value() }).To(PanicWith(invalidated))
			Expect(func() { it.More() }).To(PanicWith(invalidated))
		})

		It("panic when a range loop appends", func() {
			appendNamed("a", "b")
			Expect(func() {
				for range v.All() {
					appendNamed("c")
				}
			}).To(PanicWith(invalidated))
		})

		It("panic past the end", func() {
			Expect(func() { v.End().Value() }).To(Panic())
			Expect(func() { v.Iter().Next() }).To(Panic())
		})
	})
})
