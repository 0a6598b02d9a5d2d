// Command memdemo exercises the memalloc façade the way a host program
// would once it has installed the allocator as its own: a handful of
// hand-rolled structures allocated, written through, and freed, in place
// of a language-level GlobalAlloc hook Go has no equivalent surface for.
package main

import (
	"flag"
	"fmt"
	"unsafe"

	"github.com/orizon-lang/memalloc"
)

func main() {
	var showStats bool

	flag.BoolVar(&showStats, "stats", false, "print allocator stats after each step")
	flag.Parse()

	fmt.Println("memalloc demo")
	fmt.Println("=============")

	a := memalloc.New()

	p1 := a.Allocate(unsafe.Sizeof(int32(0)))
	*(*int32)(p1) = 22
	fmt.Printf("p1 allocated at %p, value %d\n", p1, *(*int32)(p1))

	report(a, showStats)

	p2 := a.AllocateZeroed(64)
	fmt.Printf("p2 allocated (zeroed) at %p\n", p2)

	report(a, showStats)

	a.Deallocate(p1)
	fmt.Println("p1 deallocated")

	p3 := a.Allocate(unsafe.Sizeof(int32(0)))
	*(*int32)(p3) = 22

	if p3 == p1 {
		fmt.Printf("p3 correctly reused p1's block at %p\n", p3)
	} else {
		fmt.Printf("p3 landed at a new block %p (p1 was %p)\n", p3, p1)
	}

	report(a, showStats)

	a.Deallocate(p2)
	a.Deallocate(p3)

	fmt.Println("everything freed")
	report(a, true)
}

func report(a *memalloc.Allocator, show bool) {
	if !show {
		return
	}

	s := a.Stats()
	fmt.Printf("  regions=%d blocks=%d free=%d reserved=%d inUse=%d allocs=%d frees=%d\n",
		s.RegionCount, s.BlockCount, s.FreeBlockCount, s.BytesReserved, s.BytesInUse, s.AllocCount, s.FreeCount)
}
