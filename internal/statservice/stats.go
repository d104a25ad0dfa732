package statservice

// Blog is the snapshot record the aggregations operate on. The caller
// supplies the collection; this package never consults persistence and all
// functions are deterministic given the input order.
type Blog struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes returns the sum of likes across all blogs, 0 for an empty
// collection.
func TotalLikes(blogs []Blog) int {
	var total int
	for _, blog := range blogs {
		total += blog.Likes
	}

	return total
}

// FavoriteBlog returns the blog with the most likes. On a tie the earliest
// blog in input order wins. Returns nil for an empty collection.
func FavoriteBlog(blogs []Blog) *Blog {
	if len(blogs) == 0 {
		return nil
	}

	fav := blogs[0]
	for _, blog := range blogs[1:] {
		if blog.Likes > fav.Likes {
			fav = blog
		}
	}

	return &fav
}

// MostBlogs returns the author with the most blogs and that count. On a tie
// the author whose first blog appears earliest in input order wins. Returns
// nil for an empty collection.
func MostBlogs(blogs []Blog) *AuthorBlogs {
	if len(blogs) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, blog := range blogs {
		if _, seen := counts[blog.Author]; !seen {
			order = append(order, blog.Author)
		}
		counts[blog.Author]++
	}

	top := AuthorBlogs{Author: order[0], Blogs: counts[order[0]]}
	for _, author := range order[1:] {
		if counts[author] > top.Blogs {
			top = AuthorBlogs{Author: author, Blogs: counts[author]}
		}
	}

	return &top
}

// MostLikes returns the author with the largest summed likes across their
// blogs. Same first-occurrence tie-break as MostBlogs. Returns nil for an
// empty collection.
func MostLikes(blogs []Blog) *AuthorLikes {
	if len(blogs) == 0 {
		return nil
	}

	likes := make(map[string]int)
	var order []string
	for _, blog := range blogs {
		if _, seen := likes[blog.Author]; !seen {
			order = append(order, blog.Author)
		}
		likes[blog.Author] += blog.Likes
	}

	top := AuthorLikes{Author: order[0], Likes: likes[order[0]]}
	for _, author := range order[1:] {
		if likes[author] > top.Likes {
			top = AuthorLikes{Author: author, Likes: likes[author]}
		}
	}

	return &top
}
