package sqlinline

const QInsertDonation = `--sql 8bb53211-8e6e-47ec-8836-39ff45d06c50
insert into donations(id, drive_id, user_id, amount, date_donated)
values ($1::uuid, $2::bigint, nullif($3::text, '')::uuid, $4::double precision, $5::timestamptz)
returning id, drive_id, user_id, amount, date_donated, created_at, updated_at;
`

// Left join keeps donations whose drive has been removed; callers surface
// those with a null drive snapshot instead of dropping them.
const QListDonations = `--sql 88497ca0-6b6f-42bb-ac15-f3176dba84e3
select d.id, d.drive_id, d.user_id, d.amount, d.date_donated, d.created_at, d.updated_at,
       v.id, v.title, v.organization, v.description, v.image_url, v.current_amount, v.target_amount, v.status, v.end_date, v.gallery, v.created_at, v.updated_at
from donations d
left join drives v on v.id = d.drive_id
where ($1::bigint = 0 or d.drive_id = $1::bigint)
  and ($2::text = '' or d.user_id = nullif($2::text, '')::uuid)
order by d.date_donated desc
limit $3::int offset $4::int;
`

const QSelectDonationByID = `--sql a979673e-1c2d-4da8-9362-4343e974356c
select id, drive_id, user_id, amount, date_donated, created_at, updated_at
from donations
where id = $1::uuid;
`

const QSumDonationsByUser = `--sql 30775a8d-a90d-4c4c-87e7-4b93be711326
select coalesce(sum(amount), 0)
from donations
where user_id = $1::uuid;
`
