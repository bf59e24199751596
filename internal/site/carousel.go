package site

// Carousel tracks the visible slide of a looping image gallery.
type Carousel struct {
	Len   int
	Index int
}

// At returns a carousel showing slide i, wrapped into range.
func (c Carousel) At(i int) Carousel {
	c.Index = c.wrap(i)
	return c
}

// Next moves one slide forward, looping past the end.
func (c Carousel) Next() Carousel {
	return c.At(c.Index + 1)
}

// Prev moves one slide back, looping past the start.
func (c Carousel) Prev() Carousel {
	return c.At(c.Index - 1)
}

// HasNav reports whether the prev/next buttons are shown.
func (c Carousel) HasNav() bool {
	return c.Len > 1
}

// Slide is what the gallery fragment renders.
type Slide struct {
	Slug   string
	Title  string
	Image  string
	Number int
	Total  int
	Prev   int
	Next   int
	Nav    bool
}

// Slide describes the visible slide of images. images must have c.Len
// entries.
func (c Carousel) Slide(slug, title string, images []string) Slide {
	s := Slide{
		Slug:   slug,
		Title:  title,
		Number: c.Index + 1,
		Total:  c.Len,
		Prev:   c.Prev().Index,
		Next:   c.Next().Index,
		Nav:    c.HasNav(),
	}
	if c.Index < len(images) {
		s.Image = images[c.Index]
	}
	return s
}

func (c Carousel) wrap(i int) int {
	if c.Len <= 0 {
		return 0
	}
	i %= c.Len
	if i < 0 {
		i += c.Len
	}
	return i
}
