package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"tweetapp/models"
	"tweetapp/monitoring"
	"tweetapp/repositories"
)

// DefaultPageSize is the feed page length served to existing clients.
const DefaultPageSize = 5

// ErrInvalidViewer means the viewer id does not resolve to a stored
// user. The auth gate rejects unauthenticated requests before the
// assembler runs, so hitting this is an integration error.
var ErrInvalidViewer = errors.New("viewer does not exist")

// TimelineEntry is a message annotated for a specific viewer.
type TimelineEntry struct {
	Message       models.Message
	LikeCount     int64
	LikedByViewer bool
}

// Cursor marks a position in the feed ordering (pub_date DESC,
// message_id DESC). Entries strictly older than the cursor follow it.
type Cursor struct {
	PublishedAt time.Time
	ID          uint
}

// Encode renders the cursor as "unixNanos.id" for use as a query param.
func (c Cursor) Encode() string {
	return strconv.FormatInt(c.PublishedAt.UnixNano(), 10) + "." + strconv.FormatUint(uint64(c.ID), 10)
}

// DecodeCursor parses a value produced by Cursor.Encode.
func DecodeCursor(s string) (Cursor, error) {
	nanosPart, idPart, ok := strings.Cut(s, ".")
	if !ok {
		return Cursor{}, fmt.Errorf("malformed cursor %q", s)
	}
	nanos, err := strconv.ParseInt(nanosPart, 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor %q: %w", s, err)
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor %q: %w", s, err)
	}
	return Cursor{PublishedAt: time.Unix(0, nanos).UTC(), ID: uint(id)}, nil
}

// TimelineService assembles the per-viewer feed: follow set, message
// selection, ordering, pagination and like annotation.
type TimelineService struct {
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	messages repositories.MessageRepository
	likes    repositories.LikeRepository
}

func NewTimelineService(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	messages repositories.MessageRepository,
	likes repositories.LikeRepository,
) *TimelineService {
	return &TimelineService{users: users, follows: follows, messages: messages, likes: likes}
}

// Page returns the zero-indexed offset page of the viewer's timeline.
// An empty page is a valid result, not an error.
func (s *TimelineService) Page(viewerID uint, page, pageSize int) ([]TimelineEntry, error) {
	authorIDs, err := s.visibleAuthors(viewerID)
	if err != nil {
		return nil, err
	}
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	messages, err := s.messages.ByAuthors(authorIDs, pageSize, page*pageSize)
	if err != nil {
		return nil, err
	}

	monitoring.TimelineFetches.Inc()
	return s.annotate(viewerID, messages)
}

// After returns the page strictly older than cursor, or the newest page
// when cursor is nil. The returned cursor points at the last entry and
// is nil once the feed is exhausted.
func (s *TimelineService) After(viewerID uint, cursor *Cursor, pageSize int) ([]TimelineEntry, *Cursor, error) {
	authorIDs, err := s.visibleAuthors(viewerID)
	if err != nil {
		return nil, nil, err
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var messages []models.Message
	if cursor == nil {
		messages, err = s.messages.ByAuthors(authorIDs, pageSize, 0)
	} else {
		messages, err = s.messages.ByAuthorsBefore(authorIDs, cursor.PublishedAt, cursor.ID, pageSize)
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(messages) == pageSize {
		last := messages[len(messages)-1]
		next = &Cursor{PublishedAt: last.PublishedAt, ID: last.ID}
	}

	monitoring.TimelineFetches.Inc()
	entries, err := s.annotate(viewerID, messages)
	if err != nil {
		return nil, nil, err
	}
	return entries, next, nil
}

// visibleAuthors is the viewer's followee set plus the viewer, so users
// always see their own posts without self-following.
func (s *TimelineService) visibleAuthors(viewerID uint) ([]uint, error) {
	if _, err := s.users.FindByID(viewerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidViewer
		}
		return nil, err
	}

	followeeIDs, err := s.follows.FolloweeIDs(viewerID)
	if err != nil {
		return nil, err
	}
	return lo.Uniq(append(followeeIDs, viewerID)), nil
}

// annotate decorates each message with its like count and whether the
// viewer liked it, using two batched queries instead of one pair per
// row.
func (s *TimelineService) annotate(viewerID uint, messages []models.Message) ([]TimelineEntry, error) {
	ids := lo.Map(messages, func(m models.Message, _ int) uint { return m.ID })

	counts, err := s.likes.CountsFor(ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.LikedSet(viewerID, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, len(messages))
	for i, m := range messages {
		entries[i] = TimelineEntry{
			Message:       m,
			LikeCount:     counts[m.ID],
			LikedByViewer: liked[m.ID],
		}
	}
	return entries, nil
}
