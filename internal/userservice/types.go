package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/authservice"
	"github.com/sushihentaime/bloglist/internal/common"
)

type UserService struct {
	m        *DBModel
	mb       common.MessageProducer
	codec    *authservice.TokenCodec
	tokenTTL time.Duration
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"-"`

	// Blogs owned by this user, projected as url/title/author in listings.
	Blogs []BlogSummary `json:"blogs"`
}

type BlogSummary struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// AuthToken is the signed bearer credential handed out at login.
type AuthToken struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}
