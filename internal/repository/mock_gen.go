// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./member.go -destination=../mocks/mock_member.go -package=mocks MemberRepositoryIface
//go:generate mockgen -source=./code.go -destination=../mocks/mock_code.go -package=mocks CodeRepositoryIface
//go:generate mockgen -source=./license.go -destination=../mocks/mock_license.go -package=mocks LicenseRepositoryIface
