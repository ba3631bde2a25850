package domain

import "errors"

var (
	// ErrDuplicateGrant is returned when an ownership grant already exists for (package, user)
	ErrDuplicateGrant = errors.New("ownership grant already exists")

	// ErrGrantNotFound is returned when no matching ownership grant exists
	ErrGrantNotFound = errors.New("ownership grant not found")

	// ErrAlreadyConfirmed is returned when a token operation targets an already confirmed grant
	ErrAlreadyConfirmed = errors.New("ownership already confirmed")

	// ErrInvalidToken is returned when no grant carries the presented confirmation token
	ErrInvalidToken = errors.New("invalid confirmation token")

	// ErrExpiredToken is returned when the confirmation token has passed its expiry
	ErrExpiredToken = errors.New("confirmation token expired")

	// ErrLastOwner is returned when revoking would leave a package with zero confirmed owners
	ErrLastOwner = errors.New("cannot remove the last owner of a package")

	// ErrCallAlreadyOpen is returned when a package already has an open ownership call
	ErrCallAlreadyOpen = errors.New("ownership call already open")

	// ErrCallNotFound is returned when no matching ownership call exists
	ErrCallNotFound = errors.New("ownership call not found")

	// ErrDuplicateRequest is returned when a candidate already has an open request for the package
	ErrDuplicateRequest = errors.New("ownership request already open")

	// ErrRequestNotFound is returned when no matching ownership request exists
	ErrRequestNotFound = errors.New("ownership request not found")

	// ErrAlreadyResolved is returned when a terminal transition targets a non-open record
	ErrAlreadyResolved = errors.New("already resolved")

	// ErrForbidden is returned when the acting user lacks the required authority
	ErrForbidden = errors.New("forbidden")

	// ErrPartialClose is returned when a bulk close transitions fewer rows than its
	// open-set snapshot; the whole transaction is rolled back
	ErrPartialClose = errors.New("bulk close applied partially and was rolled back")

	// ErrPackageNotFound is returned when the named package does not exist
	ErrPackageNotFound = errors.New("package not found")

	// ErrUserNotFound is returned when the named user does not exist
	ErrUserNotFound = errors.New("user not found")
)
