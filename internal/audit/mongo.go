// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"time"

	"github.com/globalsign/mgo"
	"github.com/pkg/errors"
)

// MongoSink writes audit entries to a MongoDB collection via mgo.
type MongoSink struct {
	session    *mgo.Session
	database   string
	collection string
}

// NewMongoSink dials url and returns a Sink backed by database/collection.
// The session is opened in mgo's default (strong) consistency mode, which
// is what a diagnostic audit trail wants: a read immediately after a write
// must see it.
func NewMongoSink(url, database, collection string) (*MongoSink, error) {
	session, err := mgo.DialWithTimeout(url, 10*time.Second)
	if err != nil {
		return nil, errors.Wrapf(err, "audit: dial %s", url)
	}
	session.SetMode(mgo.Strong, true)
	return &MongoSink{session: session, database: database, collection: collection}, nil
}

func (s *MongoSink) Record(e Entry) error {
	sess := s.session.Copy()
	defer sess.Close()

	c := sess.DB(s.database).C(s.collection)
	return c.Insert(e)
}

func (s *MongoSink) Close() error {
	s.session.Close()
	return nil
}
