package sortedset

type Color uint8

const (
	red   Color = 0
	black Color = 1
)

type node[T comparable] struct {
	value  T
	color  Color
	left   *node[T]
	right  *node[T]
	parent *node[T]
}
