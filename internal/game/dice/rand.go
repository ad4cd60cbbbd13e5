package dice

// RandInt0 returns a value in [0, n). Non-positive n yields 0.
func RandInt0(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	return src.Intn(n)
}

// RandInt1 returns a value in [1, n]. Non-positive n yields 1.
func RandInt1(src Source, n int) int {
	return RandInt0(src, n) + 1
}

// OneIn reports true with probability 1/n. n <= 1 is always true.
func OneIn(src Source, n int) bool {
	return RandInt0(src, n) == 0
}

// Damroll sums count rolls of a sides-faced die.
//
// Postcondition: count <= result <= count*sides when both are positive, else 0.
func Damroll(src Source, count, sides int) int {
	if count <= 0 || sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < count; i++ {
		total += src.Intn(sides) + 1
	}
	return total
}
