package phonebook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/jeanpaul/phonebook/internal/contact"
)

func ivan() contact.Contact {
	return contact.Contact{
		FirstName:      "Иван",
		LastName:       "Иванов",
		Patronymic:     "Иванович",
		Organization:   "Effective Mobile",
		OfficeNumber:   "89991575656",
		PersonalNumber: "89991575656",
	}
}

type PhonebookSuite struct {
	suite.Suite
	path string
	pb   *Phonebook
}

func (s *PhonebookSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "test_db.json")
	pb, err := Open(s.path)
	s.Require().NoError(err)
	s.pb = pb
}

func (s *PhonebookSuite) TearDownTest() {
	if !s.pb.closed {
		s.Require().NoError(s.pb.Close())
	}
}

func TestPhonebookSuite(t *testing.T) {
	suite.Run(t, new(PhonebookSuite))
}

func (s *PhonebookSuite) TestAddContact() {
	s.Run("stores a valid contact under id 1", func() {
		out := s.pb.AddContact(ivan())
		s.True(out.Success)
		s.Equal(MsgCreated, out.Message)
		s.Equal(1, out.ID)

		all := s.pb.GetAllContacts()
		s.Require().Len(all, 1)
		s.Equal(ivan(), all[0].Contact)
		s.Equal(1, all[0].ID)
	})

	s.Run("rejects the same personal number twice", func() {
		out := s.pb.AddContact(ivan())
		s.False(out.Success)
		s.Equal(MsgDuplicate, out.Message)
		s.ErrorIs(out.Err, ErrDuplicateKey)
		s.Len(s.pb.GetAllContacts(), 1)
	})

	s.Run("accepts a duplicate office number", func() {
		c := ivan()
		c.PersonalNumber = "89990000001"
		out := s.pb.AddContact(c)
		s.True(out.Success)
		s.Equal(2, out.ID)
	})
}

func (s *PhonebookSuite) TestAddContactValidation() {
	cases := []struct {
		name  string
		field contact.Field
		value string
	}{
		{"first name lowercase", contact.FirstName, "имя"},
		{"first name two words", contact.FirstName, "Имя имя"},
		{"first name latin", contact.FirstName, "Name"},
		{"last name lowercase", contact.LastName, "фамилия"},
		{"last name two words", contact.LastName, "Фам илия"},
		{"last name latin", contact.LastName, "Lastname"},
		{"patronymic lowercase", contact.Patronymic, "отчество"},
		{"patronymic two words", contact.Patronymic, "Отч ество"},
		{"patronymic latin", contact.Patronymic, "Patronymic"},
		{"name with digit", contact.FirstName, "Иван1"},
		{"name with ё", contact.FirstName, "Пётр"},
		{"last name with Ё", contact.LastName, "Ёлкин"},
		{"empty name", contact.LastName, ""},
		{"empty organization", contact.Organization, ""},
		{"office number too short", contact.OfficeNumber, "8999157565"},
		{"office number too long", contact.OfficeNumber, "899915756561"},
		{"office number with letters", contact.OfficeNumber, "8999157565a"},
		{"personal number with plus", contact.PersonalNumber, "+8999157565"},
		{"personal number with spaces", contact.PersonalNumber, "8 999 157 56"},
		{"personal number non-ascii digits", contact.PersonalNumber, "٨٩٩٩١٥٧٥٦٥٦"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			before := len(s.pb.GetAllContacts())
			c := ivan()
			c.Set(tc.field, tc.value)

			out := s.pb.AddContact(c)
			s.False(out.Success)
			s.Equal(MsgInvalid, out.Message)
			s.ErrorIs(out.Err, ErrValidation)
			s.Zero(out.ID)
			s.Len(s.pb.GetAllContacts(), before)
		})
	}
}

func (s *PhonebookSuite) TestGetContacts() {
	dwight := ivan()
	dwight.FirstName = "Дуайт"
	dwight.PersonalNumber = "89990000002"
	anna := ivan()
	anna.FirstName = "Анна"
	anna.Organization = "Пятёрочка"
	anna.PersonalNumber = "89990000003"
	for _, c := range []contact.Contact{ivan(), dwight, anna} {
		s.Require().True(s.pb.AddContact(c).Success)
	}

	s.Run("empty filter returns everything in storage order", func() {
		all := s.pb.GetContacts(Filter{})
		s.Require().Len(all, 3)
		s.Equal([]int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})
	})

	s.Run("single field", func() {
		got := s.pb.GetContacts(Where(contact.FirstName, "Иван"))
		s.Require().Len(got, 1)
		s.Equal(ivan(), got[0].Contact)
	})

	s.Run("fields are combined with AND", func() {
		f := Where(contact.LastName, "Иванов")
		f.Set(contact.Organization, "Effective Mobile")
		got := s.pb.GetContacts(f)
		s.Len(got, 2)

		f.Set(contact.FirstName, "Анна")
		s.Empty(s.pb.GetContacts(f))
	})

	s.Run("no partial or case-insensitive matches", func() {
		s.Empty(s.pb.GetContacts(Where(contact.FirstName, "Ива")))
		s.Empty(s.pb.GetContacts(Where(contact.FirstName, "иван")))
		s.Empty(s.pb.GetContacts(Where(contact.Organization, "effective mobile")))
	})

	s.Run("result is never nil", func() {
		got := s.pb.GetContacts(Where(contact.PersonalNumber, "00000000000"))
		s.NotNil(got)
		s.Empty(got)
	})
}

func (s *PhonebookSuite) TestDeleteContact() {
	s.Run("missing contact on empty store", func() {
		out := s.pb.DeleteContact("00000000000")
		s.False(out.Success)
		s.Equal(MsgDoesNotExist, out.Message)
		s.ErrorIs(out.Err, ErrNotFound)
	})

	s.Run("existing contact", func() {
		s.Require().True(s.pb.AddContact(ivan()).Success)
		out := s.pb.DeleteContact("89991575656")
		s.True(out.Success)
		s.Equal(MsgDeleted, out.Message)
		s.Empty(s.pb.GetAllContacts())
	})

	s.Run("deleted ids are not reused while open", func() {
		out := s.pb.AddContact(ivan())
		s.True(out.Success)
		s.Equal(2, out.ID)
	})
}

func (s *PhonebookSuite) TestUpdateContact() {
	other := ivan()
	other.FirstName = "Дуайт"
	other.PersonalNumber = "89990000002"
	s.Require().True(s.pb.AddContact(ivan()).Success)
	s.Require().True(s.pb.AddContact(other).Success)

	s.Run("missing contact", func() {
		var u Update
		u.Set(contact.Organization, "Other")
		out := s.pb.UpdateContact("00000000000", u)
		s.False(out.Success)
		s.Equal(MsgNotFound, out.Message)
		s.ErrorIs(out.Err, ErrNotFound)
		s.Equal("Effective Mobile", s.pb.GetAllContacts()[0].Organization)
		s.Equal("Effective Mobile", s.pb.GetAllContacts()[1].Organization)
	})

	s.Run("changes only supplied fields of one contact", func() {
		var u Update
		u.Set(contact.Organization, "Dunder Mifflin")
		u.Set(contact.OfficeNumber, "89990001111")
		out := s.pb.UpdateContact("89991575656", u)
		s.True(out.Success)
		s.Equal(MsgUpdated, out.Message)

		want := ivan()
		want.Organization = "Dunder Mifflin"
		want.OfficeNumber = "89990001111"
		all := s.pb.GetAllContacts()
		s.Equal(want, all[0].Contact)
		s.Equal(other, all[1].Contact)
	})

	s.Run("replacement values are not validated by default", func() {
		var u Update
		u.Set(contact.FirstName, "имя")
		out := s.pb.UpdateContact("89991575656", u)
		s.True(out.Success)
		s.Equal("имя", s.pb.GetAllContacts()[0].FirstName)
	})

	s.Run("personal number can move to a free value", func() {
		var u Update
		u.Set(contact.PersonalNumber, "89990000009")
		s.True(s.pb.UpdateContact("89991575656", u).Success)
		s.Len(s.pb.GetContacts(Where(contact.PersonalNumber, "89990000009")), 1)
		s.Empty(s.pb.GetContacts(Where(contact.PersonalNumber, "89991575656")))
	})

	s.Run("personal number cannot collide with another contact", func() {
		var u Update
		u.Set(contact.PersonalNumber, "89990000002")
		out := s.pb.UpdateContact("89990000009", u)
		s.False(out.Success)
		s.Equal(MsgDuplicate, out.Message)
		s.ErrorIs(out.Err, ErrDuplicateKey)
		s.Len(s.pb.GetContacts(Where(contact.PersonalNumber, "89990000002")), 1)
	})
}

func (s *PhonebookSuite) TestStrictUpdates() {
	s.Require().NoError(s.pb.Close())
	pb, err := Open(s.path, WithStrictUpdates(true))
	s.Require().NoError(err)
	s.pb = pb
	s.Require().True(s.pb.AddContact(ivan()).Success)

	s.Run("invalid replacement is rejected", func() {
		var u Update
		u.Set(contact.FirstName, "имя")
		out := s.pb.UpdateContact("89991575656", u)
		s.False(out.Success)
		s.Equal(MsgInvalid, out.Message)
		s.ErrorIs(out.Err, ErrValidation)
		s.Equal("Иван", s.pb.GetAllContacts()[0].FirstName)
	})

	s.Run("valid replacement is applied", func() {
		var u Update
		u.Set(contact.FirstName, "Дуайт")
		s.True(s.pb.UpdateContact("89991575656", u).Success)
		s.Equal("Дуайт", s.pb.GetAllContacts()[0].FirstName)
	})
}

func (s *PhonebookSuite) TestPersistence() {
	s.Require().True(s.pb.AddContact(ivan()).Success)
	c := ivan()
	c.PersonalNumber = "89990000002"
	s.Require().True(s.pb.AddContact(c).Success)
	s.Require().True(s.pb.DeleteContact("89991575656").Success)
	s.Require().NoError(s.pb.Close())

	pb, err := Open(s.path)
	s.Require().NoError(err)
	s.pb = pb

	all := s.pb.GetAllContacts()
	s.Require().Len(all, 1)
	s.Equal(2, all[0].ID)
	s.Equal(c, all[0].Contact)

	out := s.pb.AddContact(ivan())
	s.Equal(3, out.ID)
}

func (s *PhonebookSuite) TestWriteFailureRollsBack() {
	s.Require().True(s.pb.AddContact(ivan()).Success)
	dir := filepath.Dir(s.path)
	s.Require().NoError(os.RemoveAll(dir))

	second := ivan()
	second.PersonalNumber = "89990000002"

	s.Run("add", func() {
		out := s.pb.AddContact(second)
		s.False(out.Success)
		s.Equal(MsgSaveFailed, out.Message)
		s.Zero(out.ID)
		s.Len(s.pb.GetAllContacts(), 1)
	})

	s.Run("update", func() {
		var u Update
		u.Set(contact.Organization, "Dunder Mifflin")
		out := s.pb.UpdateContact("89991575656", u)
		s.False(out.Success)
		s.Equal(MsgSaveFailed, out.Message)
		s.Equal(ivan(), s.pb.GetAllContacts()[0].Contact)
	})

	s.Run("delete", func() {
		out := s.pb.DeleteContact("89991575656")
		s.False(out.Success)
		s.Equal(MsgSaveFailed, out.Message)
		s.Len(s.pb.GetAllContacts(), 1)
	})

	s.Run("failed add does not consume an id", func() {
		s.Require().NoError(os.MkdirAll(dir, 0755))
		out := s.pb.AddContact(second)
		s.True(out.Success)
		s.Equal(2, out.ID)
	})
}

func (s *PhonebookSuite) TestClosed() {
	s.Require().NoError(s.pb.Close())

	s.ErrorIs(s.pb.Close(), ErrClosed)
	out := s.pb.AddContact(ivan())
	s.False(out.Success)
	s.Equal(MsgClosed, out.Message)
	s.ErrorIs(s.pb.DeleteContact("89991575656").Err, ErrClosed)
	s.ErrorIs(s.pb.UpdateContact("89991575656", Update{}).Err, ErrClosed)
	s.Empty(s.pb.GetAllContacts())
}

func TestOpenFailsFast(t *testing.T) {
	dir := t.TempDir()

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Open(path); err == nil {
			t.Fatal("expected error for corrupt file")
		}
	})

	t.Run("personal number stored twice", func(t *testing.T) {
		path := filepath.Join(dir, "twice.json")
		body := `{"_default": {
			"1": {"first_name": "Иван", "last_name": "Иванов", "patronymic": "Иванович", "organization": "Effective Mobile", "office_number": "89991575656", "personal_number": "89991575656"},
			"2": {"first_name": "Дуайт", "last_name": "Шрутт", "patronymic": "Курцович", "organization": "Dunder Mifflin", "office_number": "89990000000", "personal_number": "89991575656"}
		}}`
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Open(path)
		if !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("expected ErrDuplicateKey, got %v", err)
		}
	})

	t.Run("record failing the schema still opens", func(t *testing.T) {
		path := filepath.Join(dir, "loose.json")
		body := `{"_default": {"1": {"first_name": "имя", "personal_number": "89991575656"}}}`
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		pb, err := Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer pb.Close()
		if n := len(pb.GetAllContacts()); n != 1 {
			t.Errorf("got %d records, want 1", n)
		}
	})

	t.Run("path is a directory", func(t *testing.T) {
		if _, err := Open(dir); err == nil {
			t.Fatal("expected error when path is a directory")
		}
	})

	t.Run("missing file is created", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "phonebook.json")
		pb, err := Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer pb.Close()
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not created: %v", err)
		}
	})
}
