package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAddReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.Add(child)
	if child.Parent() != a {
		t.Fatal("child not parented to a")
	}

	b.Add(child)
	if child.Parent() != b {
		t.Error("child not reparented to b")
	}
	if len(a.Children()) != 0 {
		t.Error("child still listed under a")
	}
}

func TestAddSelfAndNilIgnored(t *testing.T) {
	a := NewNode("a")
	a.Add(nil)
	a.Add(a)
	if len(a.Children()) != 0 {
		t.Errorf("Children() = %d entries, want 0", len(a.Children()))
	}
}

func TestRemoveIdempotent(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.Add(child)

	root.Remove(child)
	root.Remove(child) // second removal is a no-op

	if len(root.Children()) != 0 {
		t.Error("child still present after removal")
	}
	if child.Parent() != nil {
		t.Error("removed child retains parent")
	}
}

func TestWorldMatrixPropagation(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.Add(child)

	root.SetPosition(mgl32.Vec3{10, 0, 0})
	child.SetPosition(mgl32.Vec3{0, 5, 0})
	root.UpdateWorld()

	p := child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(p.X()-10)) > 1e-5 || math.Abs(float64(p.Y()-5)) > 1e-5 {
		t.Errorf("child world origin = %v, want (10, 5, 0)", p)
	}
}

func TestLocalMatrixComposesTRS(t *testing.T) {
	n := NewNode("n")
	n.SetPosition(mgl32.Vec3{1, 0, 0})
	n.SetScale(mgl32.Vec3{2, 2, 2})

	// Scale applies before translation: local origin lands at the
	// translation, a unit X point lands at 1+2.
	p := n.LocalMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if math.Abs(float64(p.X()-3)) > 1e-5 {
		t.Errorf("transformed point x = %v, want 3", p.X())
	}
}

func TestTraverseSkipsSubtree(t *testing.T) {
	root := NewNode("root")
	skip := NewNode("skip")
	hidden := NewNode("hidden")
	sibling := NewNode("sibling")
	root.Add(skip)
	skip.Add(hidden)
	root.Add(sibling)

	var visited []string
	root.Traverse(func(n *Node) bool {
		visited = append(visited, n.Name)
		return n.Name != "skip"
	})

	want := []string{"root", "skip", "sibling"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
}

func TestFind(t *testing.T) {
	root := NewNode("root")
	inner := NewNode("inner")
	leaf := NewNode("leaf")
	root.Add(inner)
	inner.Add(leaf)

	if got := root.Find("leaf"); got != leaf {
		t.Errorf("Find(leaf) = %v", got)
	}
	if got := root.Find("missing"); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}
	if got := root.Find("root"); got != root {
		t.Error("Find should match the receiver itself")
	}
}
