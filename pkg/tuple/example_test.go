package tuple_test

import (
	"encoding/hex"
	"fmt"

	"github.com/ssargent/tuplestore/pkg/tuple"
)

func ExamplePack() {
	buf := tuple.Pack(nil, tuple.Tuple{tuple.Int(0), tuple.Int(1)})
	fmt.Println(hex.EncodeToString(buf))
	// Output: 13001301
}

func ExampleUnpack() {
	buf := tuple.Pack(nil, tuple.Tuple{tuple.Int(7)})
	t, err := tuple.Unpack(buf)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	v, _ := t[0].Int64()
	fmt.Println(v)
	// Output: 7
}

func ExampleKey_Compare() {
	a := tuple.NewKeyFromTuple(nil, tuple.Tuple{tuple.Int(1)})
	b := tuple.NewKeyFromTuple(nil, tuple.Tuple{tuple.Int(2)})
	fmt.Println(a.Compare(b) < 0)
	// Output: true
}

func ExampleKey_Get() {
	k := tuple.NewKeyFromTuple(nil, tuple.Tuple{tuple.Text("a"), tuple.Text("b"), tuple.Text("c")})
	last, _ := k.Get(-1)
	s, _ := last.Text()
	fmt.Println(s)
	// Output: c
}
