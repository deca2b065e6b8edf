package models

// Rating grades how well a card was remembered. The ordering is
// significant: Again is a complete failure, Easy is perfect recall.
type Rating int

const (
	RatingAgain Rating = iota // complete blackout
	RatingHard                // serious difficulty
	RatingGood                // some hesitation
	RatingEasy                // perfect recall
)

// Ratings lists all ratings in severity order, worst first.
func Ratings() [4]Rating {
	return [4]Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}
}

// RatingFromKey maps an input key ('1'-'4') to a rating.
func RatingFromKey(key rune) (Rating, bool) {
	switch key {
	case '1':
		return RatingAgain, true
	case '2':
		return RatingHard, true
	case '3':
		return RatingGood, true
	case '4':
		return RatingEasy, true
	default:
		return 0, false
	}
}

// Key returns the input key the presentation layer binds to this rating.
func (r Rating) Key() rune {
	return rune('1' + int(r))
}

func (r Rating) String() string {
	switch r {
	case RatingAgain:
		return "Again"
	case RatingHard:
		return "Hard"
	case RatingGood:
		return "Good"
	case RatingEasy:
		return "Easy"
	default:
		return "Unknown"
	}
}

// Color returns the display color name the presentation layer uses for
// this rating.
func (r Rating) Color() string {
	switch r {
	case RatingAgain:
		return "red"
	case RatingHard:
		return "yellow"
	case RatingGood:
		return "blue"
	case RatingEasy:
		return "green"
	default:
		return "white"
	}
}
